// Package actualitem contains use cases for the actual purchase log.
package actualitem

import (
	"context"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// ListActualItemsOutput represents the output of listing actual items.
type ListActualItemsOutput struct {
	Items []*entity.ActualItem
}

// ListActualItemsUseCase handles listing the purchase log.
type ListActualItemsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListActualItemsUseCase creates a new ListActualItemsUseCase instance.
func NewListActualItemsUseCase(ledgerRepo adapter.LedgerRepository) *ListActualItemsUseCase {
	return &ListActualItemsUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute returns every actual item, newest first.
func (uc *ListActualItemsUseCase) Execute(ctx context.Context) (*ListActualItemsOutput, error) {
	items, err := uc.ledgerRepo.ListActualItems(ctx)
	if err != nil {
		return nil, domainerror.FromRepository("list actual items", err)
	}
	return &ListActualItemsOutput{Items: items}, nil
}
