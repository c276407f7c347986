package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// PlannedItem is an item the user intends to buy.
// PurchasedQuantity is derived from linked actual items and is never set by callers.
type PlannedItem struct {
	ID                string
	Name              string
	TargetQuantity    int
	PurchasedQuantity int
	PricePerUnit      decimal.Decimal
}

// NewPlannedItem creates a planned item with nothing purchased yet.
func NewPlannedItem(id, name string, targetQuantity int, pricePerUnit decimal.Decimal) *PlannedItem {
	return &PlannedItem{
		ID:             id,
		Name:           strings.TrimSpace(name),
		TargetQuantity: targetQuantity,
		PricePerUnit:   RoundMoney(pricePerUnit),
	}
}

// Validate checks the user-editable fields of the planned item.
func (p *PlannedItem) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidName, "name is required", domainerror.ErrInvalidName)
	}
	if p.TargetQuantity < 0 {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidTargetQuantity, "targetQuantity must be zero or greater", domainerror.ErrInvalidTargetQuantity)
	}
	if p.PricePerUnit.IsNegative() {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidAmount, "pricePerUnit must not be negative", domainerror.ErrInvalidAmount)
	}
	return nil
}

// PlannedTotal returns price per unit times target quantity.
func (p *PlannedItem) PlannedTotal() decimal.Decimal {
	return p.PricePerUnit.Mul(decimal.NewFromInt(int64(p.TargetQuantity)))
}

// IsComplete reports whether the target quantity has been reached.
func (p *PlannedItem) IsComplete() bool {
	return p.PurchasedQuantity >= p.TargetQuantity
}

// RemainingQuantity returns how many units are still to be bought, never below zero.
func (p *PlannedItem) RemainingQuantity() int {
	if p.PurchasedQuantity >= p.TargetQuantity {
		return 0
	}
	return p.TargetQuantity - p.PurchasedQuantity
}
