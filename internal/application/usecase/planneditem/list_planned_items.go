// Package planneditem contains planned item use cases.
package planneditem

import (
	"context"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// ListPlannedItemsOutput represents the output of listing planned items.
type ListPlannedItemsOutput struct {
	Items []*entity.PlannedItem
}

// ListPlannedItemsUseCase handles listing planned items.
type ListPlannedItemsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListPlannedItemsUseCase creates a new ListPlannedItemsUseCase instance.
func NewListPlannedItemsUseCase(ledgerRepo adapter.LedgerRepository) *ListPlannedItemsUseCase {
	return &ListPlannedItemsUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute returns every planned item.
func (uc *ListPlannedItemsUseCase) Execute(ctx context.Context) (*ListPlannedItemsOutput, error) {
	items, err := uc.ledgerRepo.ListPlannedItems(ctx)
	if err != nil {
		return nil, domainerror.FromRepository("list planned items", err)
	}
	return &ListPlannedItemsOutput{Items: items}, nil
}
