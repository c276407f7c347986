package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
)

// CachedLedgerRepository decorates a ledger repository with read-through
// caching of the three collections. Every write goes through KeysInvalidatedBy.
//
// Each key carries a generation that invalidation bumps. A read only stores
// what it loaded if the generation is unchanged, so a load that raced with a
// write never repopulates the cache with pre-write data.
type CachedLedgerRepository struct {
	inner   adapter.LedgerRepository
	cache   adapter.Cache
	metrics *Metrics

	mu          sync.Mutex
	generations map[adapter.CacheKey]uint64
}

var _ adapter.LedgerRepository = (*CachedLedgerRepository)(nil)

// NewCachedLedgerRepository wraps inner with cache. metrics may be nil.
func NewCachedLedgerRepository(inner adapter.LedgerRepository, cache adapter.Cache, metrics *Metrics) *CachedLedgerRepository {
	return &CachedLedgerRepository{
		inner:       inner,
		cache:       cache,
		metrics:     metrics,
		generations: make(map[adapter.CacheKey]uint64),
	}
}

// GetBudget returns the cached budget or loads it.
func (r *CachedLedgerRepository) GetBudget(ctx context.Context) (*entity.Budget, error) {
	return readThrough(ctx, r, adapter.CacheKeyBudget, r.inner.GetBudget)
}

// SaveBudget saves the budget and invalidates the budget entry.
func (r *CachedLedgerRepository) SaveBudget(ctx context.Context, budget *entity.Budget) error {
	defer r.invalidate(ctx, WriteBudget)
	return r.inner.SaveBudget(ctx, budget)
}

// ListPlannedItems returns the cached planned items or loads them.
func (r *CachedLedgerRepository) ListPlannedItems(ctx context.Context) ([]*entity.PlannedItem, error) {
	return readThrough(ctx, r, adapter.CacheKeyPlannedItems, r.inner.ListPlannedItems)
}

// FindPlannedItemByID is not cached.
func (r *CachedLedgerRepository) FindPlannedItemByID(ctx context.Context, id string) (*entity.PlannedItem, error) {
	return r.inner.FindPlannedItemByID(ctx, id)
}

// CreatePlannedItem creates the item and invalidates the planned items entry.
func (r *CachedLedgerRepository) CreatePlannedItem(ctx context.Context, item *entity.PlannedItem) error {
	defer r.invalidate(ctx, WritePlannedItems)
	return r.inner.CreatePlannedItem(ctx, item)
}

// UpdatePlannedItem updates the item and invalidates the planned items entry.
func (r *CachedLedgerRepository) UpdatePlannedItem(ctx context.Context, item *entity.PlannedItem) error {
	defer r.invalidate(ctx, WritePlannedItems)
	return r.inner.UpdatePlannedItem(ctx, item)
}

// DeletePlannedItem deletes the item. Detaching rewrites actual items, so both entries are invalidated.
func (r *CachedLedgerRepository) DeletePlannedItem(ctx context.Context, id string) (int, error) {
	defer r.invalidate(ctx, WritePlannedItemDelete)
	return r.inner.DeletePlannedItem(ctx, id)
}

// ListActualItems returns the cached actual items or loads them.
func (r *CachedLedgerRepository) ListActualItems(ctx context.Context) ([]*entity.ActualItem, error) {
	return readThrough(ctx, r, adapter.CacheKeyActualItems, r.inner.ListActualItems)
}

// FindActualItemByID is not cached.
func (r *CachedLedgerRepository) FindActualItemByID(ctx context.Context, id string) (*entity.ActualItem, error) {
	return r.inner.FindActualItemByID(ctx, id)
}

// CreateActualItem creates the item and invalidates actual and planned entries.
func (r *CachedLedgerRepository) CreateActualItem(ctx context.Context, item *entity.ActualItem) error {
	defer r.invalidate(ctx, WriteActualItems)
	return r.inner.CreateActualItem(ctx, item)
}

// UpdateActualItem updates the item and invalidates actual and planned entries.
func (r *CachedLedgerRepository) UpdateActualItem(ctx context.Context, item *entity.ActualItem) error {
	defer r.invalidate(ctx, WriteActualItems)
	return r.inner.UpdateActualItem(ctx, item)
}

// DeleteActualItem deletes the item and invalidates actual and planned entries.
func (r *CachedLedgerRepository) DeleteActualItem(ctx context.Context, id string) error {
	defer r.invalidate(ctx, WriteActualItems)
	return r.inner.DeleteActualItem(ctx, id)
}

// Snapshot always reads the store so the three collections come from one transaction.
func (r *CachedLedgerRepository) Snapshot(ctx context.Context) (*entity.FinancialSnapshot, error) {
	return r.inner.Snapshot(ctx)
}

// invalidate runs after the write whether it failed or not; a failed commit
// may still have reached the database.
func (r *CachedLedgerRepository) invalidate(ctx context.Context, w Write) {
	keys := KeysInvalidatedBy(w)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		r.generations[key]++
	}
	if err := r.cache.Invalidate(context.WithoutCancel(ctx), keys...); err != nil {
		slog.Error("Failed to invalidate cache", "keys", keys, "error", err)
		return
	}
	r.metrics.invalidated(keys)
}

func (r *CachedLedgerRepository) generation(key adapter.CacheKey) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[key]
}

func readThrough[T any](ctx context.Context, r *CachedLedgerRepository, key adapter.CacheKey, load func(context.Context) (T, error)) (T, error) {
	var cached T
	ok, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Cache read failed, falling back to store", "key", key, "error", err)
	}
	if ok {
		r.metrics.hit(key)
		return cached, nil
	}
	r.metrics.miss(key)

	gen := r.generation(key)
	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generations[key] != gen {
		return value, nil
	}
	if err := r.cache.Set(ctx, key, value); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
	return value, nil
}
