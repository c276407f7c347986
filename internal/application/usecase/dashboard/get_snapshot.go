// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// GetSnapshotOutput represents the output of reading the full ledger.
type GetSnapshotOutput struct {
	Snapshot *entity.FinancialSnapshot
}

// GetSnapshotUseCase reads budget, planned and actual items as one consistent
// view. Clients re-fetch it to recover from failed optimistic writes.
type GetSnapshotUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetSnapshotUseCase creates a new GetSnapshotUseCase instance.
func NewGetSnapshotUseCase(ledgerRepo adapter.LedgerRepository) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute reads the snapshot.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context) (*GetSnapshotOutput, error) {
	snapshot, err := uc.ledgerRepo.Snapshot(ctx)
	if err != nil {
		return nil, domainerror.FromRepository("read ledger snapshot", err)
	}
	return &GetSnapshotOutput{Snapshot: snapshot}, nil
}
