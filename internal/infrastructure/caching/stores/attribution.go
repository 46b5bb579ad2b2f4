// Package stores provides concrete cache store implementations
package stores

import (
	"sync"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/caching/types"
	"github.com/RoomReachHQ/roomreach-go/pkg/config"
)

// AttributionStore implements attribution caching operations with tenant isolation
type AttributionStore struct {
	tenantCaches map[string]*types.TenantAttributionCache
	mu           sync.RWMutex
}

// NewAttributionStore creates a new attribution cache store
func NewAttributionStore() *AttributionStore {
	return &AttributionStore{
		tenantCaches: make(map[string]*types.TenantAttributionCache),
	}
}

// InitializeTenant creates cache structures for a tenant
func (as *AttributionStore) InitializeTenant(tenantID string) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.tenantCaches[tenantID] == nil {
		as.tenantCaches[tenantID] = &types.TenantAttributionCache{
			LinkIndexes:  make(map[int]*types.LinkIndexCache),
			VisitorStats: make(map[string]*types.VisitorStatsCache),
			LastUpdated:  time.Now().UTC(),
		}
	}
}

// GetTenantCache safely retrieves a tenant's attribution cache
func (as *AttributionStore) GetTenantCache(tenantID string) (*types.TenantAttributionCache, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	cache, exists := as.tenantCaches[tenantID]
	return cache, exists
}

// =============================================================================
// Link Index Operations
// =============================================================================

// GetLinkIndex retrieves a warmed content link index for a client.
// Expired entries read as misses.
func (as *AttributionStore) GetLinkIndex(tenantID string, clientID int) (*campaign.ContentLinkIndex, bool) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	entry, exists := cache.LinkIndexes[clientID]
	if !exists {
		return nil, false
	}

	if time.Since(entry.CachedAt) > config.LinkIndexTTL {
		return nil, false
	}

	return entry.Index, true
}

// SetLinkIndex stores a content link index for a client
func (as *AttributionStore) SetLinkIndex(tenantID string, clientID int, idx *campaign.ContentLinkIndex) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		as.InitializeTenant(tenantID)
		cache, _ = as.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.LinkIndexes[clientID] = &types.LinkIndexCache{
		Index:    idx,
		CachedAt: time.Now().UTC(),
	}
	cache.LastUpdated = time.Now().UTC()
}

// InvalidateLinkIndex drops the cached index for a client
func (as *AttributionStore) InvalidateLinkIndex(tenantID string, clientID int) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	delete(cache.LinkIndexes, clientID)
	cache.LastUpdated = time.Now().UTC()
}

// =============================================================================
// Visitor Stats Operations
// =============================================================================

// GetVisitorStats retrieves a cached stats snapshot for a visitor.
// Expired entries read as misses.
func (as *AttributionStore) GetVisitorStats(tenantID, visitorID string) (*visitor.VisitorStats, bool) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return nil, false
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	entry, exists := cache.VisitorStats[visitorID]
	if !exists {
		return nil, false
	}

	if time.Since(entry.ComputedAt) > config.VisitorStatsTTL {
		return nil, false
	}

	return entry.Stats, true
}

// SetVisitorStats stores a computed stats snapshot for a visitor
func (as *AttributionStore) SetVisitorStats(tenantID, visitorID string, stats *visitor.VisitorStats) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		as.InitializeTenant(tenantID)
		cache, _ = as.GetTenantCache(tenantID)
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.VisitorStats[visitorID] = &types.VisitorStatsCache{
		Stats:      stats,
		ComputedAt: time.Now().UTC(),
	}
	cache.LastUpdated = time.Now().UTC()
}

// InvalidateVisitorStats drops the cached snapshot for a visitor
func (as *AttributionStore) InvalidateVisitorStats(tenantID, visitorID string) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	delete(cache.VisitorStats, visitorID)
	cache.LastUpdated = time.Now().UTC()
}

// =============================================================================
// Cache Management Operations
// =============================================================================

// PurgeExpired removes expired link index and visitor stats entries for a tenant
func (as *AttributionStore) PurgeExpired(tenantID string) int {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return 0
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	purged := 0
	now := time.Now()

	for clientID, entry := range cache.LinkIndexes {
		if now.Sub(entry.CachedAt) > config.LinkIndexTTL {
			delete(cache.LinkIndexes, clientID)
			purged++
		}
	}

	for visitorID, entry := range cache.VisitorStats {
		if now.Sub(entry.ComputedAt) > config.VisitorStatsTTL {
			delete(cache.VisitorStats, visitorID)
			purged++
		}
	}

	if purged > 0 {
		cache.LastUpdated = time.Now().UTC()
	}
	return purged
}

// InvalidateTenant clears all cached attribution state for a tenant
func (as *AttributionStore) InvalidateTenant(tenantID string) {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return
	}

	cache.Mu.Lock()
	defer cache.Mu.Unlock()

	cache.LinkIndexes = make(map[int]*types.LinkIndexCache)
	cache.VisitorStats = make(map[string]*types.VisitorStatsCache)
	cache.LastUpdated = time.Now().UTC()
}

// GetSummary returns cache status summary for debugging
func (as *AttributionStore) GetSummary(tenantID string) map[string]any {
	cache, exists := as.GetTenantCache(tenantID)
	if !exists {
		return map[string]any{
			"exists": false,
		}
	}

	cache.Mu.RLock()
	defer cache.Mu.RUnlock()

	return map[string]any{
		"exists":       true,
		"linkIndexes":  len(cache.LinkIndexes),
		"visitorStats": len(cache.VisitorStats),
		"lastUpdated":  cache.LastUpdated,
	}
}

// GetTenantIDs returns every tenant with an initialized cache
func (as *AttributionStore) GetTenantIDs() []string {
	as.mu.RLock()
	defer as.mu.RUnlock()

	ids := make([]string, 0, len(as.tenantCaches))
	for tenantID := range as.tenantCaches {
		ids = append(ids, tenantID)
	}
	return ids
}
