// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/smartspend/backend/internal/domain/entity"
)

// LedgerRepository defines the durable ledger store. Every write that touches
// actual items applies the matching reconciliation adjustment in the same
// transaction, so no reader observes one without the other.
type LedgerRepository interface {
	// GetBudget returns the budget. A ledger without a budget row has amount zero.
	GetBudget(ctx context.Context) (*entity.Budget, error)

	// SaveBudget creates or replaces the budget.
	SaveBudget(ctx context.Context, budget *entity.Budget) error

	// ListPlannedItems returns all planned items in creation order.
	ListPlannedItems(ctx context.Context) ([]*entity.PlannedItem, error)

	// FindPlannedItemByID retrieves a planned item by its ID.
	FindPlannedItemByID(ctx context.Context, id string) (*entity.PlannedItem, error)

	// CreatePlannedItem stores a new planned item with purchased quantity zero.
	CreatePlannedItem(ctx context.Context, item *entity.PlannedItem) error

	// UpdatePlannedItem writes name, target quantity and price per unit only.
	// On success item.PurchasedQuantity holds the stored value.
	UpdatePlannedItem(ctx context.Context, item *entity.PlannedItem) error

	// DeletePlannedItem detaches every actual item linked to the planned item
	// and removes it. Returns the number of detached actual items.
	DeletePlannedItem(ctx context.Context, id string) (int, error)

	// ListActualItems returns all actual items, newest date first.
	ListActualItems(ctx context.Context) ([]*entity.ActualItem, error)

	// FindActualItemByID retrieves an actual item by its ID.
	FindActualItemByID(ctx context.Context, id string) (*entity.ActualItem, error)

	// CreateActualItem stores the actual item and reconciles its planned item.
	CreateActualItem(ctx context.Context, item *entity.ActualItem) error

	// UpdateActualItem replaces the actual item and reconciles the old and new planned items.
	UpdateActualItem(ctx context.Context, item *entity.ActualItem) error

	// DeleteActualItem removes the actual item and reconciles its planned item.
	DeleteActualItem(ctx context.Context, id string) error

	// Snapshot reads budget, planned items and actual items as one consistent view.
	Snapshot(ctx context.Context) (*entity.FinancialSnapshot, error)
}
