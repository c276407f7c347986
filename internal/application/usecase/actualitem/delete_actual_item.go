package actualitem

import (
	"context"

	"github.com/smartspend/backend/internal/application/adapter"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// DeleteActualItemUseCase handles deleting logged purchases.
type DeleteActualItemUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewDeleteActualItemUseCase creates a new DeleteActualItemUseCase instance.
func NewDeleteActualItemUseCase(ledgerRepo adapter.LedgerRepository) *DeleteActualItemUseCase {
	return &DeleteActualItemUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute deletes the actual item and reverts its planned contribution.
func (uc *DeleteActualItemUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.ledgerRepo.DeleteActualItem(ctx, id); err != nil {
		return domainerror.FromRepository("delete actual item", err)
	}
	return nil
}
