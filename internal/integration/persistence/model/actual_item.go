package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
)

// ActualItemModel represents the actual_items table in the database.
// PlannedItemID is a weak reference: the repository detaches it before the
// planned item is deleted.
type ActualItemModel struct {
	ID            string          `gorm:"type:varchar(50);primaryKey"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Quantity      int             `gorm:"not null"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	PlannedItemID *string         `gorm:"type:varchar(50);index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ActualItemModel.
func (ActualItemModel) TableName() string {
	return "actual_items"
}

// ToEntity converts an ActualItemModel to a domain ActualItem entity.
func (m *ActualItemModel) ToEntity() *entity.ActualItem {
	item := &entity.ActualItem{
		ID:        m.ID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		TotalCost: entity.RoundMoney(m.TotalCost),
		Date:      entity.CalendarDate(m.Date),
	}
	if m.PlannedItemID != nil {
		item.SetPlannedItemID(*m.PlannedItemID)
	}
	return item
}

// ActualItemFromEntity creates an ActualItemModel from a domain ActualItem entity.
func ActualItemFromEntity(item *entity.ActualItem) *ActualItemModel {
	m := &ActualItemModel{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		TotalCost: entity.RoundMoney(item.TotalCost),
		Date:      entity.CalendarDate(item.Date),
	}
	if id := item.LinkedID(); id != "" {
		m.PlannedItemID = &id
	}
	return m
}

// AllModels lists every model for auto-migration.
func AllModels() []any {
	return []any{&BudgetModel{}, &PlannedItemModel{}, &ActualItemModel{}}
}
