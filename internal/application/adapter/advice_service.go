package adapter

import (
	"context"

	"github.com/smartspend/backend/internal/domain/entity"
)

// AdviceService turns a ledger snapshot into short spending advice.
type AdviceService interface {
	// Summarize returns advice text for the snapshot.
	Summarize(ctx context.Context, snapshot *entity.FinancialSnapshot) (string, error)

	// IsAvailable reports whether the provider is configured.
	IsAvailable() bool
}
