// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// GetBudgetOutput represents the output of reading the budget.
type GetBudgetOutput struct {
	Budget *entity.Budget
}

// GetBudgetUseCase handles reading the budget.
type GetBudgetUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(ledgerRepo adapter.LedgerRepository) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute returns the current budget.
func (uc *GetBudgetUseCase) Execute(ctx context.Context) (*GetBudgetOutput, error) {
	budget, err := uc.ledgerRepo.GetBudget(ctx)
	if err != nil {
		return nil, domainerror.FromRepository("read budget", err)
	}
	return &GetBudgetOutput{Budget: budget}, nil
}
