package adapter

import "context"

// CacheKey names one cached read collection.
type CacheKey string

const (
	CacheKeyBudget       CacheKey = "budget"
	CacheKeyPlannedItems CacheKey = "plannedItems"
	CacheKeyActualItems  CacheKey = "actualItems"
)

// CacheKeys lists every cached collection.
var CacheKeys = []CacheKey{CacheKeyBudget, CacheKeyPlannedItems, CacheKeyActualItems}

// Cache memoizes read collections, each entry with its own time-to-live.
type Cache interface {
	// Get decodes the entry for key into dest. Returns false on a miss.
	Get(ctx context.Context, key CacheKey, dest any) (bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key CacheKey, value any) error

	// Invalidate removes the given entries.
	Invalidate(ctx context.Context, keys ...CacheKey) error
}
