package planneditem

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// UpdatePlannedItemInput represents the input for editing a planned item.
type UpdatePlannedItemInput struct {
	ID                string
	Name              string
	TargetQuantity    int
	PricePerUnit      decimal.Decimal
	PurchasedQuantity *int // Derived; must match the stored value when sent
}

// UpdatePlannedItemOutput represents the output of editing a planned item.
type UpdatePlannedItemOutput struct {
	Item *entity.PlannedItem
}

// UpdatePlannedItemUseCase handles direct field edits of a planned item.
type UpdatePlannedItemUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewUpdatePlannedItemUseCase creates a new UpdatePlannedItemUseCase instance.
func NewUpdatePlannedItemUseCase(ledgerRepo adapter.LedgerRepository) *UpdatePlannedItemUseCase {
	return &UpdatePlannedItemUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute edits name, target quantity and price per unit.
func (uc *UpdatePlannedItemUseCase) Execute(ctx context.Context, input UpdatePlannedItemInput) (*UpdatePlannedItemOutput, error) {
	// Find the existing item
	existing, err := uc.ledgerRepo.FindPlannedItemByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.FromRepository("find planned item", err)
	}

	// Clients echo the item back; an unchanged purchasedQuantity is fine, a different one is not.
	if input.PurchasedQuantity != nil && *input.PurchasedQuantity != existing.PurchasedQuantity {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeDerivedFieldMutation,
			"purchasedQuantity is derived from actual items and cannot be set",
			domainerror.ErrDerivedFieldMutation,
		)
	}

	item := entity.NewPlannedItem(input.ID, input.Name, input.TargetQuantity, input.PricePerUnit)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.UpdatePlannedItem(ctx, item); err != nil {
		return nil, domainerror.FromRepository("update planned item", err)
	}

	return &UpdatePlannedItemOutput{Item: item}, nil
}
