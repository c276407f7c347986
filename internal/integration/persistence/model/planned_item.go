package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
)

// PlannedItemModel represents the planned_items table in the database.
type PlannedItemModel struct {
	ID                string          `gorm:"type:varchar(50);primaryKey"`
	Name              string          `gorm:"type:varchar(255);not null"`
	TargetQuantity    int             `gorm:"not null"`
	PurchasedQuantity int             `gorm:"not null"`
	PricePerUnit      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PlannedItemModel.
func (PlannedItemModel) TableName() string {
	return "planned_items"
}

// ToEntity converts a PlannedItemModel to a domain PlannedItem entity.
func (m *PlannedItemModel) ToEntity() *entity.PlannedItem {
	return &entity.PlannedItem{
		ID:                m.ID,
		Name:              m.Name,
		TargetQuantity:    m.TargetQuantity,
		PurchasedQuantity: m.PurchasedQuantity,
		PricePerUnit:      entity.RoundMoney(m.PricePerUnit),
	}
}

// PlannedItemFromEntity creates a PlannedItemModel from a domain PlannedItem entity.
func PlannedItemFromEntity(item *entity.PlannedItem) *PlannedItemModel {
	return &PlannedItemModel{
		ID:                item.ID,
		Name:              item.Name,
		TargetQuantity:    item.TargetQuantity,
		PurchasedQuantity: item.PurchasedQuantity,
		PricePerUnit:      entity.RoundMoney(item.PricePerUnit),
	}
}
