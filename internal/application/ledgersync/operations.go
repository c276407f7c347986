package ledgersync

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/domain/reconciliation"
)

// PlannedItemInput holds the editable fields of a planned item.
type PlannedItemInput struct {
	Name           string
	TargetQuantity int
	PricePerUnit   decimal.Decimal
}

// ActualItemInput holds the fields of a logged purchase. An empty
// PlannedItemID means unlinked.
type ActualItemInput struct {
	Name          string
	Quantity      int
	TotalCost     decimal.Decimal
	Date          time.Time
	PlannedItemID string
}

// PurchaseOption customizes MarkPurchased.
type PurchaseOption func(*ActualItemInput)

// WithName overrides the name of the logged purchase. Blank names are ignored.
func WithName(name string) PurchaseOption {
	return func(in *ActualItemInput) {
		if strings.TrimSpace(name) != "" {
			in.Name = name
		}
	}
}

// UpdateBudget sets the budget amount.
func (f *Facade) UpdateBudget(amount decimal.Decimal) error {
	budget := entity.NewBudget(amount)
	if err := budget.Validate(); err != nil {
		return err
	}

	return f.apply(OpUpdateBudget, entity.MainBudgetID,
		func(s *entity.FinancialSnapshot) error {
			s.Budget = budget.Amount
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.SaveBudget(ctx, budget.Amount)
		},
	)
}

// AddPlannedItem adds an item to the plan with nothing purchased yet.
func (f *Facade) AddPlannedItem(input PlannedItemInput) (entity.PlannedItem, error) {
	item := entity.NewPlannedItem(f.ids.NewID(), input.Name, input.TargetQuantity, input.PricePerUnit)
	if err := item.Validate(); err != nil {
		return entity.PlannedItem{}, err
	}
	created := *item

	err := f.apply(OpAddPlannedItem, created.ID,
		func(s *entity.FinancialSnapshot) error {
			s.PlannedItems = append(s.PlannedItems, created)
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.CreatePlannedItem(ctx, created)
		},
	)
	if err != nil {
		return entity.PlannedItem{}, err
	}
	return created, nil
}

// UpdatePlannedItem edits name, target quantity and price. The purchased
// quantity is kept.
func (f *Facade) UpdatePlannedItem(id string, input PlannedItemInput) (entity.PlannedItem, error) {
	var updated entity.PlannedItem

	err := f.apply(OpUpdatePlannedItem, id,
		func(s *entity.FinancialSnapshot) error {
			idx, ok := s.FindPlanned(id)
			if !ok {
				return plannedItemNotFound()
			}
			item := entity.NewPlannedItem(id, input.Name, input.TargetQuantity, input.PricePerUnit)
			item.PurchasedQuantity = s.PlannedItems[idx].PurchasedQuantity
			if err := item.Validate(); err != nil {
				return err
			}
			s.PlannedItems[idx] = *item
			updated = *item
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.UpdatePlannedItem(ctx, updated)
		},
	)
	if err != nil {
		return entity.PlannedItem{}, err
	}
	return updated, nil
}

// DeletePlannedItem removes the planned item and unlinks its actual items.
func (f *Facade) DeletePlannedItem(id string) error {
	return f.apply(OpDeletePlannedItem, id,
		func(s *entity.FinancialSnapshot) error {
			idx, ok := s.FindPlanned(id)
			if !ok {
				return plannedItemNotFound()
			}
			s.PlannedItems = append(s.PlannedItems[:idx], s.PlannedItems[idx+1:]...)

			for _, detached := range reconciliation.OnPlanDelete(id, s.ActualItems) {
				if i, ok := s.FindActual(detached.ID); ok {
					s.ActualItems[i] = detached
				}
			}
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.DeletePlannedItem(ctx, id)
		},
	)
}

// AddActualItem logs a purchase and, when linked, raises the planned item's
// purchased quantity.
func (f *Facade) AddActualItem(input ActualItemInput) (entity.ActualItem, error) {
	return f.addActualItem(OpAddActualItem, input)
}

// MarkPurchased logs quantity units of a planned item as bought. The name
// defaults to the planned item's name. The resulting state is the same as
// AddActualItem with the equivalent linked input.
func (f *Facade) MarkPurchased(plannedItemID string, quantity int, totalCost decimal.Decimal, date time.Time, opts ...PurchaseOption) (entity.ActualItem, error) {
	state := f.State()
	idx, ok := state.FindPlanned(plannedItemID)
	if !ok {
		return entity.ActualItem{}, plannedItemNotFound()
	}

	input := ActualItemInput{
		Name:          state.PlannedItems[idx].Name,
		Quantity:      quantity,
		TotalCost:     totalCost,
		Date:          date,
		PlannedItemID: plannedItemID,
	}
	for _, opt := range opts {
		opt(&input)
	}

	return f.addActualItem(OpMarkPurchased, input)
}

func (f *Facade) addActualItem(op Operation, input ActualItemInput) (entity.ActualItem, error) {
	item := entity.NewActualItem(f.ids.NewID(), input.Name, input.Quantity, input.TotalCost, input.Date, input.PlannedItemID)
	if err := item.Validate(); err != nil {
		return entity.ActualItem{}, err
	}
	created := item.Clone()

	err := f.apply(op, created.ID,
		func(s *entity.FinancialSnapshot) error {
			if err := checkReference(s, created); err != nil {
				return err
			}
			s.ActualItems = insertByDate(s.ActualItems, created.Clone())
			s.PlannedItems = reconciliation.ApplyToPlanned(s.PlannedItems, reconciliation.OnCreate(created))
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.CreateActualItem(ctx, created.Clone())
		},
	)
	if err != nil {
		return entity.ActualItem{}, err
	}
	return created.Clone(), nil
}

// UpdateActualItem replaces a logged purchase, moving its quantity between
// planned items when the link changes.
func (f *Facade) UpdateActualItem(id string, input ActualItemInput) (entity.ActualItem, error) {
	item := entity.NewActualItem(id, input.Name, input.Quantity, input.TotalCost, input.Date, input.PlannedItemID)
	if err := item.Validate(); err != nil {
		return entity.ActualItem{}, err
	}
	updated := item.Clone()

	err := f.apply(OpUpdateActualItem, id,
		func(s *entity.FinancialSnapshot) error {
			idx, ok := s.FindActual(id)
			if !ok {
				return actualItemNotFound()
			}
			if err := checkReference(s, updated); err != nil {
				return err
			}
			old := s.ActualItems[idx]
			s.ActualItems[idx] = updated.Clone()
			s.PlannedItems = reconciliation.ApplyToPlanned(s.PlannedItems, reconciliation.OnUpdate(old, updated))
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.UpdateActualItem(ctx, updated.Clone())
		},
	)
	if err != nil {
		return entity.ActualItem{}, err
	}
	return updated.Clone(), nil
}

// DeleteActualItem removes a logged purchase and reverts its contribution.
func (f *Facade) DeleteActualItem(id string) error {
	return f.apply(OpDeleteActualItem, id,
		func(s *entity.FinancialSnapshot) error {
			idx, ok := s.FindActual(id)
			if !ok {
				return actualItemNotFound()
			}
			old := s.ActualItems[idx]
			s.ActualItems = append(s.ActualItems[:idx], s.ActualItems[idx+1:]...)
			s.PlannedItems = reconciliation.ApplyToPlanned(s.PlannedItems, reconciliation.OnDelete(old))
			return nil
		},
		func(ctx context.Context) error {
			return f.durable.DeleteActualItem(ctx, id)
		},
	)
}

// insertByDate places a newly logged item where the durable listing puts it:
// newest date first, and ahead of older entries on the same date.
func insertByDate(items []entity.ActualItem, item entity.ActualItem) []entity.ActualItem {
	pos := len(items)
	for i := range items {
		if !items[i].Date.After(item.Date) {
			pos = i
			break
		}
	}
	out := make([]entity.ActualItem, 0, len(items)+1)
	out = append(out, items[:pos]...)
	out = append(out, item)
	return append(out, items[pos:]...)
}

func checkReference(s *entity.FinancialSnapshot, item entity.ActualItem) error {
	id := item.LinkedID()
	if id == "" {
		return nil
	}
	if _, ok := s.FindPlanned(id); !ok {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeUnknownPlannedItemRef,
			"plannedItemId does not reference an existing planned item",
			domainerror.ErrPlannedItemReferenceNotFound,
		)
	}
	return nil
}

func plannedItemNotFound() error {
	return domainerror.NewLedgerError(domainerror.ErrCodePlannedItemNotFound, "planned item not found", domainerror.ErrPlannedItemNotFound)
}

func actualItemNotFound() error {
	return domainerror.NewLedgerError(domainerror.ErrCodeActualItemNotFound, "actual item not found", domainerror.ErrActualItemNotFound)
}
