// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
)

// BudgetModel represents the budget table in the database. It holds a single row.
type BudgetModel struct {
	ID        string          `gorm:"type:varchar(50);primaryKey"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budget"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return entity.NewBudget(m.Amount)
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:     entity.MainBudgetID,
		Amount: entity.RoundMoney(budget.Amount),
	}
}
