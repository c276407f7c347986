package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for setting the budget.
type UpdateBudgetInput struct {
	Amount decimal.Decimal
}

// UpdateBudgetOutput represents the output of setting the budget.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles direct edits of the budget amount.
type UpdateBudgetUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(ledgerRepo adapter.LedgerRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute validates and saves the budget.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget := entity.NewBudget(input.Amount)
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.SaveBudget(ctx, budget); err != nil {
		return nil, domainerror.FromRepository("save budget", err)
	}

	return &UpdateBudgetOutput{Budget: budget}, nil
}
