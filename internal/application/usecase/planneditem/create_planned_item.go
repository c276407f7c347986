package planneditem

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// CreatePlannedItemInput represents the input for adding an item to the plan.
type CreatePlannedItemInput struct {
	ID                string // Optional, generated when empty
	Name              string
	TargetQuantity    int
	PricePerUnit      decimal.Decimal
	PurchasedQuantity *int // Derived; only nil or zero is accepted
}

// CreatePlannedItemOutput represents the output of adding an item to the plan.
type CreatePlannedItemOutput struct {
	Item *entity.PlannedItem
}

// CreatePlannedItemUseCase handles adding items to the plan.
type CreatePlannedItemUseCase struct {
	ledgerRepo adapter.LedgerRepository
	ids        adapter.IDGenerator
}

// NewCreatePlannedItemUseCase creates a new CreatePlannedItemUseCase instance.
func NewCreatePlannedItemUseCase(ledgerRepo adapter.LedgerRepository, ids adapter.IDGenerator) *CreatePlannedItemUseCase {
	return &CreatePlannedItemUseCase{
		ledgerRepo: ledgerRepo,
		ids:        ids,
	}
}

// Execute validates and stores a new planned item.
func (uc *CreatePlannedItemUseCase) Execute(ctx context.Context, input CreatePlannedItemInput) (*CreatePlannedItemOutput, error) {
	// purchasedQuantity only changes through actual items
	if input.PurchasedQuantity != nil && *input.PurchasedQuantity != 0 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeDerivedFieldMutation,
			"purchasedQuantity is derived from actual items and cannot be set",
			domainerror.ErrDerivedFieldMutation,
		)
	}

	id := input.ID
	if id == "" {
		id = uc.ids.NewID()
	}

	item := entity.NewPlannedItem(id, input.Name, input.TargetQuantity, input.PricePerUnit)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.CreatePlannedItem(ctx, item); err != nil {
		return nil, domainerror.FromRepository("create planned item", err)
	}

	slog.Debug("Planned item created", "plannedItemID", item.ID)

	return &CreatePlannedItemOutput{Item: item}, nil
}
