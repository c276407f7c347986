package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/smartspend/backend/internal/domain/error"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// ActualItem is a recorded purchase, optionally linked to a planned item.
type ActualItem struct {
	ID            string
	Name          string
	Quantity      int
	TotalCost     decimal.Decimal
	Date          time.Time
	PlannedItemID *string
}

// NewActualItem creates an actual item. An empty plannedItemID means unlinked.
func NewActualItem(id, name string, quantity int, totalCost decimal.Decimal, date time.Time, plannedItemID string) *ActualItem {
	item := &ActualItem{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		TotalCost: RoundMoney(totalCost),
		Date:      CalendarDate(date),
	}
	item.SetPlannedItemID(plannedItemID)
	return item
}

// Validate checks the fields of the actual item. Referential integrity is
// checked by whoever owns the planned items.
func (a *ActualItem) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidName, "name is required", domainerror.ErrInvalidName)
	}
	if a.Quantity < 1 {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidQuantity, "quantity must be at least 1", domainerror.ErrInvalidQuantity)
	}
	if a.TotalCost.IsNegative() {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidAmount, "totalCost must not be negative", domainerror.ErrInvalidAmount)
	}
	if a.Date.IsZero() {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidDate, "date is required", domainerror.ErrInvalidDate)
	}
	return nil
}

// LinkedID returns the linked planned item id, or "" when unlinked.
func (a *ActualItem) LinkedID() string {
	if a.PlannedItemID == nil {
		return ""
	}
	return *a.PlannedItemID
}

// IsLinkedTo reports whether the item is linked to the given planned item.
func (a *ActualItem) IsLinkedTo(plannedItemID string) bool {
	return a.PlannedItemID != nil && *a.PlannedItemID == plannedItemID
}

// SetPlannedItemID links the item to a planned item. An empty id unlinks it.
func (a *ActualItem) SetPlannedItemID(id string) {
	if id == "" {
		a.PlannedItemID = nil
		return
	}
	a.PlannedItemID = &id
}

// UnitCost returns total cost divided by quantity.
func (a *ActualItem) UnitCost() decimal.Decimal {
	if a.Quantity <= 0 {
		return decimal.Zero
	}
	return a.TotalCost.Div(decimal.NewFromInt(int64(a.Quantity))).Round(2)
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidDate, "date must be formatted as YYYY-MM-DD", domainerror.ErrInvalidDate)
	}
	return t, nil
}
