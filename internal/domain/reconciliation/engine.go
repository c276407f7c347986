// Package reconciliation keeps each planned item's purchased quantity equal to
// the quantities of the actual items linked to it.
//
// Every function here is pure: it computes what has to change and leaves
// persisting the result to the caller. The durable store and the client-side
// state both run the same functions so they cannot drift apart.
package reconciliation

import "github.com/smartspend/backend/internal/domain/entity"

// Delta is a signed change to one planned item's purchased quantity.
type Delta struct {
	PlannedItemID string
	Quantity      int
}

// Adjustment is an ordered list of deltas. Steps are applied in order and the
// purchased quantity is floored at zero after each one.
type Adjustment []Delta

// OnCreate returns the adjustment for creating an actual item.
func OnCreate(item entity.ActualItem) Adjustment {
	if item.PlannedItemID == nil {
		return nil
	}
	return Adjustment{{PlannedItemID: *item.PlannedItemID, Quantity: item.Quantity}}
}

// OnDelete returns the adjustment for deleting an actual item.
func OnDelete(item entity.ActualItem) Adjustment {
	if item.PlannedItemID == nil {
		return nil
	}
	return Adjustment{{PlannedItemID: *item.PlannedItemID, Quantity: -item.Quantity}}
}

// OnUpdate returns the adjustment for replacing old with updated: the old
// contribution is reverted first, then the new one is applied. Updating an
// item in place goes through the same two steps.
func OnUpdate(old, updated entity.ActualItem) Adjustment {
	adj := OnDelete(old)
	return append(adj, OnCreate(updated)...)
}

// OnPlanDelete returns the actual items linked to the deleted planned item,
// unlinked. Their quantities and costs are untouched.
func OnPlanDelete(plannedItemID string, actuals []entity.ActualItem) []entity.ActualItem {
	var detached []entity.ActualItem
	for _, item := range actuals {
		if !item.IsLinkedTo(plannedItemID) {
			continue
		}
		item.PlannedItemID = nil
		detached = append(detached, item)
	}
	return detached
}

// IsEmpty reports whether the adjustment has no steps.
func (a Adjustment) IsEmpty() bool {
	return len(a) == 0
}

// PlannedItemIDs returns the distinct planned item ids touched, in order of first appearance.
func (a Adjustment) PlannedItemIDs() []string {
	seen := make(map[string]struct{}, len(a))
	ids := make([]string, 0, len(a))
	for _, d := range a {
		if _, ok := seen[d.PlannedItemID]; ok {
			continue
		}
		seen[d.PlannedItemID] = struct{}{}
		ids = append(ids, d.PlannedItemID)
	}
	return ids
}

// Net returns the unclamped sum of the deltas for plannedItemID.
func (a Adjustment) Net(plannedItemID string) int {
	total := 0
	for _, d := range a {
		if d.PlannedItemID == plannedItemID {
			total += d.Quantity
		}
	}
	return total
}

// Apply runs the steps for plannedItemID against purchased and returns the result.
func (a Adjustment) Apply(plannedItemID string, purchased int) int {
	for _, d := range a {
		if d.PlannedItemID != plannedItemID {
			continue
		}
		purchased = floor(purchased + d.Quantity)
	}
	return purchased
}

// ApplyToPlanned returns a copy of items with the adjustment applied.
// Deltas for ids not present in items are ignored.
func ApplyToPlanned(items []entity.PlannedItem, a Adjustment) []entity.PlannedItem {
	out := make([]entity.PlannedItem, len(items))
	copy(out, items)
	if a.IsEmpty() {
		return out
	}
	for i := range out {
		out[i].PurchasedQuantity = a.Apply(out[i].ID, out[i].PurchasedQuantity)
	}
	return out
}

// PurchasedFromActuals recomputes the purchased quantity of plannedItemID by
// replaying every linked actual item. Used to audit stored totals.
func PurchasedFromActuals(plannedItemID string, actuals []entity.ActualItem) int {
	total := 0
	for _, item := range actuals {
		if item.IsLinkedTo(plannedItemID) {
			total += item.Quantity
		}
	}
	return floor(total)
}

func floor(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
