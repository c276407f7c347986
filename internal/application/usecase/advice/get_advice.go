package advice

import (
	"context"
	"log/slog"
	"time"

	"github.com/smartspend/backend/internal/application/adapter"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// DefaultTimeout bounds a single advice request.
const DefaultTimeout = 20 * time.Second

// GetAdviceOutput represents the generated advice.
type GetAdviceOutput struct {
	Advice      string
	GeneratedAt time.Time
}

// GetAdviceUseCase asks the advice provider for tips on the current ledger.
// Provider failures come back as AdviceError and never touch the ledger.
type GetAdviceUseCase struct {
	ledgerRepo adapter.LedgerRepository
	advisor    adapter.AdviceService
	timeout    time.Duration
}

// NewGetAdviceUseCase creates a new GetAdviceUseCase instance.
func NewGetAdviceUseCase(ledgerRepo adapter.LedgerRepository, advisor adapter.AdviceService, timeout time.Duration) *GetAdviceUseCase {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GetAdviceUseCase{
		ledgerRepo: ledgerRepo,
		advisor:    advisor,
		timeout:    timeout,
	}
}

// Execute reads a snapshot and summarizes it through the provider.
func (uc *GetAdviceUseCase) Execute(ctx context.Context) (*GetAdviceOutput, error) {
	if uc.advisor == nil || !uc.advisor.IsAvailable() {
		return nil, newAdviceError(domainerror.ErrCodeAdviceNotConfigured, false, domainerror.ErrAdvisorNotConfigured)
	}

	snapshot, err := uc.ledgerRepo.Snapshot(ctx)
	if err != nil {
		return nil, domainerror.FromRepository("read ledger snapshot", err)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.advisor.Summarize(ctx, snapshot)
	if err != nil {
		adviceErr := classifyError(err)
		slog.Warn("Advice generation failed", "code", adviceErr.Code, "retryable", adviceErr.Retryable, "error", err)
		return nil, adviceErr
	}
	if text == "" {
		return nil, classifyError(domainerror.ErrEmptyAdvice)
	}

	return &GetAdviceOutput{
		Advice:      text,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
