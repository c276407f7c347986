package actualitem

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// UpdateActualItemInput represents the input for editing a logged purchase.
type UpdateActualItemInput struct {
	ID            string
	Name          string
	Quantity      int
	TotalCost     decimal.Decimal
	Date          time.Time
	PlannedItemID string // Empty unlinks the item
}

// UpdateActualItemOutput represents the output of editing a logged purchase.
type UpdateActualItemOutput struct {
	Item *entity.ActualItem
}

// UpdateActualItemUseCase handles edits of logged purchases, including
// linking, unlinking and moving between planned items.
type UpdateActualItemUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewUpdateActualItemUseCase creates a new UpdateActualItemUseCase instance.
func NewUpdateActualItemUseCase(ledgerRepo adapter.LedgerRepository) *UpdateActualItemUseCase {
	return &UpdateActualItemUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute validates and replaces the actual item.
func (uc *UpdateActualItemUseCase) Execute(ctx context.Context, input UpdateActualItemInput) (*UpdateActualItemOutput, error) {
	item := entity.NewActualItem(input.ID, input.Name, input.Quantity, input.TotalCost, input.Date, input.PlannedItemID)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.UpdateActualItem(ctx, item); err != nil {
		return nil, domainerror.FromRepository("update actual item", err)
	}

	return &UpdateActualItemOutput{Item: item}, nil
}
