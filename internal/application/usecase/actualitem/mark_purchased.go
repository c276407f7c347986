package actualitem

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// MarkPurchasedInput represents the input for buying part of a planned item.
type MarkPurchasedInput struct {
	ID            string // Optional, generated when empty
	PlannedItemID string
	Quantity      int
	TotalCost     decimal.Decimal
	Date          time.Time
	Name          *string // Optional override, defaults to the planned item's name
}

// MarkPurchasedUseCase records a purchase of a planned item. It builds the
// linked actual item and hands it to CreateActualItemUseCase, so the result is
// the same as logging that item directly.
type MarkPurchasedUseCase struct {
	ledgerRepo adapter.LedgerRepository
	create     *CreateActualItemUseCase
}

// NewMarkPurchasedUseCase creates a new MarkPurchasedUseCase instance.
func NewMarkPurchasedUseCase(ledgerRepo adapter.LedgerRepository, create *CreateActualItemUseCase) *MarkPurchasedUseCase {
	return &MarkPurchasedUseCase{
		ledgerRepo: ledgerRepo,
		create:     create,
	}
}

// Execute creates the linked actual item.
func (uc *MarkPurchasedUseCase) Execute(ctx context.Context, input MarkPurchasedInput) (*CreateActualItemOutput, error) {
	planned, err := uc.ledgerRepo.FindPlannedItemByID(ctx, input.PlannedItemID)
	if err != nil {
		return nil, domainerror.FromRepository("find planned item", err)
	}

	name := planned.Name
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		name = *input.Name
	}

	return uc.create.Execute(ctx, CreateActualItemInput{
		ID:            input.ID,
		Name:          name,
		Quantity:      input.Quantity,
		TotalCost:     input.TotalCost,
		Date:          input.Date,
		PlannedItemID: planned.ID,
	})
}
