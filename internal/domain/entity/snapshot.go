package entity

import "github.com/shopspring/decimal"

// FinancialSnapshot is a consistent view of the whole ledger.
type FinancialSnapshot struct {
	Budget       decimal.Decimal
	PlannedItems []PlannedItem
	ActualItems  []ActualItem
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s FinancialSnapshot) Clone() FinancialSnapshot {
	out := FinancialSnapshot{
		Budget:       s.Budget,
		PlannedItems: make([]PlannedItem, len(s.PlannedItems)),
		ActualItems:  make([]ActualItem, len(s.ActualItems)),
	}
	copy(out.PlannedItems, s.PlannedItems)
	for i, item := range s.ActualItems {
		out.ActualItems[i] = item.Clone()
	}
	return out
}

// FindPlanned returns the index of the planned item with the given id.
func (s FinancialSnapshot) FindPlanned(id string) (int, bool) {
	for i := range s.PlannedItems {
		if s.PlannedItems[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindActual returns the index of the actual item with the given id.
func (s FinancialSnapshot) FindActual(id string) (int, bool) {
	for i := range s.ActualItems {
		if s.ActualItems[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy of the item that does not share the link pointer.
func (a ActualItem) Clone() ActualItem {
	if a.PlannedItemID != nil {
		id := *a.PlannedItemID
		a.PlannedItemID = &id
	}
	return a
}
