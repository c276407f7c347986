// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// MainBudgetID identifies the single budget row of the ledger.
const MainBudgetID = "main_budget"

// Budget is the overall spending budget.
type Budget struct {
	Amount decimal.Decimal
}

// NewBudget creates a Budget with the amount rounded to cents.
func NewBudget(amount decimal.Decimal) *Budget {
	return &Budget{Amount: RoundMoney(amount)}
}

// Validate checks the budget amount.
func (b *Budget) Validate() error {
	if b.Amount.IsNegative() {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidAmount, "budget amount must not be negative", domainerror.ErrInvalidAmount)
	}
	return nil
}

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
