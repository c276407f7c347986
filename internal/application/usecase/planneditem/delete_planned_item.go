package planneditem

import (
	"context"
	"log/slog"

	"github.com/smartspend/backend/internal/application/adapter"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// DeletePlannedItemOutput represents the output of deleting a planned item.
type DeletePlannedItemOutput struct {
	DetachedActualItems int
}

// DeletePlannedItemUseCase handles deleting planned items. Linked actual items
// are kept and unlinked.
type DeletePlannedItemUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewDeletePlannedItemUseCase creates a new DeletePlannedItemUseCase instance.
func NewDeletePlannedItemUseCase(ledgerRepo adapter.LedgerRepository) *DeletePlannedItemUseCase {
	return &DeletePlannedItemUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute deletes the planned item.
func (uc *DeletePlannedItemUseCase) Execute(ctx context.Context, id string) (*DeletePlannedItemOutput, error) {
	detached, err := uc.ledgerRepo.DeletePlannedItem(ctx, id)
	if err != nil {
		return nil, domainerror.FromRepository("delete planned item", err)
	}

	if detached > 0 {
		slog.Info("Planned item deleted, actual items detached", "plannedItemID", id, "detached", detached)
	}

	return &DeletePlannedItemOutput{DetachedActualItems: detached}, nil
}
