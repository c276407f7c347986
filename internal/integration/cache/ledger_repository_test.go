package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
	"github.com/smartspend/backend/internal/integration/persistence"
	ledgertestutil "github.com/smartspend/backend/internal/testutil"
)

var testDay = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

// recordingCache wraps a cache and remembers which keys were invalidated.
type recordingCache struct {
	adapter.Cache
	invalidated map[adapter.CacheKey]int
}

func (c *recordingCache) Invalidate(ctx context.Context, keys ...adapter.CacheKey) error {
	for _, key := range keys {
		c.invalidated[key]++
	}
	return c.Cache.Invalidate(ctx, keys...)
}

func (c *recordingCache) reset() {
	c.invalidated = map[adapter.CacheKey]int{}
}

func newCachedRepository(t *testing.T) (*CachedLedgerRepository, *recordingCache) {
	t.Helper()
	inner := persistence.NewLedgerRepository(ledgertestutil.NewLedgerDB(t))
	rec := &recordingCache{Cache: NewMemoryCache(nil), invalidated: map[adapter.CacheKey]int{}}
	return NewCachedLedgerRepository(inner, rec, NewMetrics(prometheus.NewRegistry())), rec
}

func TestKeysInvalidatedBy(t *testing.T) {
	tests := []struct {
		name string
		w    Write
		want []adapter.CacheKey
	}{
		{"budget", WriteBudget, []adapter.CacheKey{adapter.CacheKeyBudget}},
		{"planned", WritePlannedItems, []adapter.CacheKey{adapter.CacheKeyPlannedItems}},
		{"actual", WriteActualItems, []adapter.CacheKey{adapter.CacheKeyActualItems, adapter.CacheKeyPlannedItems}},
		{"planned delete", WritePlannedItemDelete, []adapter.CacheKey{adapter.CacheKeyPlannedItems, adapter.CacheKeyActualItems}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeysInvalidatedBy(tt.w)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestCachedLedgerRepository_ActualWriteInvalidatesPlanned(t *testing.T) {
	repo, rec := newCachedRepository(t)
	ctx := context.Background()

	if err := repo.CreatePlannedItem(ctx, entity.NewPlannedItem("p1", "Coffee", 3, decimal.RequireFromString("8.00"))); err != nil {
		t.Fatalf("failed to create planned item: %v", err)
	}

	// warm the planned items entry
	planned, err := repo.ListPlannedItems(ctx)
	if err != nil || len(planned) != 1 || planned[0].PurchasedQuantity != 0 {
		t.Fatalf("unexpected planned items %+v (%v)", planned, err)
	}

	rec.reset()
	item := entity.NewActualItem("a1", "Coffee", 2, decimal.RequireFromString("16.00"), testDay, "p1")
	if err := repo.CreateActualItem(ctx, item); err != nil {
		t.Fatalf("failed to create actual item: %v", err)
	}

	if rec.invalidated[adapter.CacheKeyActualItems] != 1 || rec.invalidated[adapter.CacheKeyPlannedItems] != 1 {
		t.Errorf("expected actual and planned entries invalidated, got %v", rec.invalidated)
	}
	if rec.invalidated[adapter.CacheKeyBudget] != 0 {
		t.Errorf("expected budget entry untouched, got %v", rec.invalidated)
	}

	planned, err = repo.ListPlannedItems(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if planned[0].PurchasedQuantity != 2 {
		t.Errorf("expected fresh purchased quantity 2, got %d", planned[0].PurchasedQuantity)
	}
}

func TestCachedLedgerRepository_BudgetWriteIsolated(t *testing.T) {
	repo, rec := newCachedRepository(t)
	ctx := context.Background()

	if err := repo.SaveBudget(ctx, entity.NewBudget(decimal.RequireFromString("300"))); err != nil {
		t.Fatalf("failed to save budget: %v", err)
	}

	if rec.invalidated[adapter.CacheKeyBudget] != 1 {
		t.Errorf("expected budget entry invalidated, got %v", rec.invalidated)
	}
	if rec.invalidated[adapter.CacheKeyPlannedItems] != 0 || rec.invalidated[adapter.CacheKeyActualItems] != 0 {
		t.Errorf("expected planned and actual entries untouched, got %v", rec.invalidated)
	}

	budget, err := repo.GetBudget(ctx)
	if err != nil || !budget.Amount.Equal(decimal.RequireFromString("300")) {
		t.Errorf("expected budget 300, got %v (%v)", budget, err)
	}
}

func TestCachedLedgerRepository_PlannedWritesOnlyInvalidatePlanned(t *testing.T) {
	repo, rec := newCachedRepository(t)
	ctx := context.Background()

	item := entity.NewPlannedItem("p1", "Tea", 1, decimal.RequireFromString("4.00"))
	if err := repo.CreatePlannedItem(ctx, item); err != nil {
		t.Fatalf("failed to create planned item: %v", err)
	}
	item.Name = "Green tea"
	if err := repo.UpdatePlannedItem(ctx, item); err != nil {
		t.Fatalf("failed to update planned item: %v", err)
	}

	if rec.invalidated[adapter.CacheKeyPlannedItems] != 2 {
		t.Errorf("expected planned entry invalidated twice, got %v", rec.invalidated)
	}
	if rec.invalidated[adapter.CacheKeyActualItems] != 0 {
		t.Errorf("expected actual entry untouched, got %v", rec.invalidated)
	}

	rec.reset()
	if _, err := repo.DeletePlannedItem(ctx, "p1"); err != nil {
		t.Fatalf("failed to delete planned item: %v", err)
	}
	if rec.invalidated[adapter.CacheKeyActualItems] != 1 {
		t.Errorf("expected delete to invalidate detached actual items, got %v", rec.invalidated)
	}
}

func TestCachedLedgerRepository_HitsAndMisses(t *testing.T) {
	inner := persistence.NewLedgerRepository(ledgertestutil.NewLedgerDB(t))
	metrics := NewMetrics(prometheus.NewRegistry())
	repo := NewCachedLedgerRepository(inner, NewMemoryCache(nil), metrics)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.ListActualItems(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := testutil.ToFloat64(metrics.misses.WithLabelValues(string(adapter.CacheKeyActualItems))); got != 1 {
		t.Errorf("expected 1 miss, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.hits.WithLabelValues(string(adapter.CacheKeyActualItems))); got != 2 {
		t.Errorf("expected 2 hits, got %v", got)
	}
}

// staleLoadRepository lets a test run a write between a cache miss and its load.
type staleLoadRepository struct {
	adapter.LedgerRepository
	beforeLoad func()
}

func (r *staleLoadRepository) ListPlannedItems(ctx context.Context) ([]*entity.PlannedItem, error) {
	items, err := r.LedgerRepository.ListPlannedItems(ctx)
	if r.beforeLoad != nil {
		hook := r.beforeLoad
		r.beforeLoad = nil
		hook()
	}
	return items, err
}

func TestCachedLedgerRepository_RacingLoadIsNotCached(t *testing.T) {
	inner := persistence.NewLedgerRepository(ledgertestutil.NewLedgerDB(t))
	ctx := context.Background()
	if err := inner.CreatePlannedItem(ctx, entity.NewPlannedItem("p1", "Rice", 2, decimal.RequireFromString("1.20"))); err != nil {
		t.Fatalf("failed to create planned item: %v", err)
	}

	racing := &staleLoadRepository{LedgerRepository: inner}
	repo := NewCachedLedgerRepository(racing, NewMemoryCache(nil), nil)
	racing.beforeLoad = func() {
		item := entity.NewActualItem("a1", "Rice", 1, decimal.RequireFromString("1.20"), testDay, "p1")
		if err := repo.CreateActualItem(ctx, item); err != nil {
			t.Errorf("failed to create actual item: %v", err)
		}
	}

	// This load read purchased=0 before the write landed.
	if _, err := repo.ListPlannedItems(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	planned, err := repo.ListPlannedItems(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if planned[0].PurchasedQuantity != 1 {
		t.Errorf("expected fresh purchased quantity 1, got %d", planned[0].PurchasedQuantity)
	}
}
