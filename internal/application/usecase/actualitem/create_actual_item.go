package actualitem

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// CreateActualItemInput represents the input for logging a purchase.
type CreateActualItemInput struct {
	ID            string // Optional, generated when empty
	Name          string
	Quantity      int
	TotalCost     decimal.Decimal
	Date          time.Time
	PlannedItemID string // Optional, empty means unlinked
}

// CreateActualItemOutput represents the output of logging a purchase.
type CreateActualItemOutput struct {
	Item *entity.ActualItem
}

// CreateActualItemUseCase handles logging purchases. The store reconciles the
// linked planned item in the same transaction.
type CreateActualItemUseCase struct {
	ledgerRepo adapter.LedgerRepository
	ids        adapter.IDGenerator
}

// NewCreateActualItemUseCase creates a new CreateActualItemUseCase instance.
func NewCreateActualItemUseCase(ledgerRepo adapter.LedgerRepository, ids adapter.IDGenerator) *CreateActualItemUseCase {
	return &CreateActualItemUseCase{
		ledgerRepo: ledgerRepo,
		ids:        ids,
	}
}

// Execute validates and stores the actual item.
func (uc *CreateActualItemUseCase) Execute(ctx context.Context, input CreateActualItemInput) (*CreateActualItemOutput, error) {
	id := input.ID
	if id == "" {
		id = uc.ids.NewID()
	}

	item := entity.NewActualItem(id, input.Name, input.Quantity, input.TotalCost, input.Date, input.PlannedItemID)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.CreateActualItem(ctx, item); err != nil {
		return nil, domainerror.FromRepository("create actual item", err)
	}

	slog.Debug("Actual item created", "actualItemID", item.ID, "plannedItemID", item.LinkedID(), "quantity", item.Quantity)

	return &CreateActualItemOutput{Item: item}, nil
}
