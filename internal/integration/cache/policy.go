// Package cache memoizes the ledger read collections and invalidates them on writes.
package cache

import (
	"time"

	"github.com/smartspend/backend/internal/application/adapter"
)

// DefaultTTL is used for any collection without a configured time-to-live.
const DefaultTTL = 5 * time.Minute

// Write names the collection a ledger write touched.
type Write int

const (
	WriteBudget Write = iota
	WritePlannedItems
	WriteActualItems
	// WritePlannedItemDelete also detaches actual items.
	WritePlannedItemDelete
)

// KeysInvalidatedBy returns the cache entries a write makes stale.
// An actual item write can change purchased quantities, so it drops the
// planned items entry as well.
func KeysInvalidatedBy(w Write) []adapter.CacheKey {
	switch w {
	case WriteBudget:
		return []adapter.CacheKey{adapter.CacheKeyBudget}
	case WritePlannedItems:
		return []adapter.CacheKey{adapter.CacheKeyPlannedItems}
	case WriteActualItems:
		return []adapter.CacheKey{adapter.CacheKeyActualItems, adapter.CacheKeyPlannedItems}
	case WritePlannedItemDelete:
		return []adapter.CacheKey{adapter.CacheKeyPlannedItems, adapter.CacheKeyActualItems}
	default:
		return adapter.CacheKeys
	}
}

// TTLs maps each collection to its time-to-live.
type TTLs map[adapter.CacheKey]time.Duration

// For returns the TTL for key, falling back to DefaultTTL.
func (t TTLs) For(key adapter.CacheKey) time.Duration {
	if ttl, ok := t[key]; ok && ttl > 0 {
		return ttl
	}
	return DefaultTTL
}
