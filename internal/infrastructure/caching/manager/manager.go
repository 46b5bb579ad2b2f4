// Package manager provides centralized cache operations with proper tenant isolation
package manager

import (
	"sync"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/caching/interfaces"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/caching/stores"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
)

// Interface assertion to ensure Manager implements the cache contract.
var _ interfaces.Cache = (*Manager)(nil)

// Manager provides centralized cache operations with proper tenant isolation by delegating to specialized stores.
type Manager struct {
	Mu               sync.RWMutex
	LastAccessed     map[string]time.Time
	attributionStore *stores.AttributionStore
	logger           *logging.ChanneledLogger
}

func NewManager(logger *logging.ChanneledLogger) *Manager {
	if logger != nil {
		logger.Cache().Info("Initializing cache manager", "stores", []string{"attribution"})
	}

	return &Manager{
		LastAccessed:     make(map[string]time.Time),
		attributionStore: stores.NewAttributionStore(),
		logger:           logger,
	}
}

func (m *Manager) updateTenantAccessTime(tenantID string) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.LastAccessed[tenantID] = time.Now().UTC()
}

func (m *Manager) InitializeTenant(tenantID string) {
	start := time.Now()
	if m.logger != nil {
		m.logger.Cache().Debug("Initializing tenant cache", "tenantId", tenantID)
	}

	m.attributionStore.InitializeTenant(tenantID)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.Cache().Info("Tenant cache initialized", "tenantId", tenantID, "duration", time.Since(start))
	}
}

// =============================================================================
// Link Index Operations
// =============================================================================

func (m *Manager) GetLinkIndex(tenantID string, clientID int) (*campaign.ContentLinkIndex, bool) {
	start := time.Now()
	idx, found := m.attributionStore.GetLinkIndex(tenantID, clientID)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.LogCacheOperation("get", "linkIndex", found, time.Since(start), tenantID)
	}
	return idx, found
}

func (m *Manager) SetLinkIndex(tenantID string, clientID int, idx *campaign.ContentLinkIndex) {
	start := time.Now()
	m.attributionStore.SetLinkIndex(tenantID, clientID, idx)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.LogCacheOperation("set", "linkIndex", true, time.Since(start), tenantID)
	}
}

func (m *Manager) InvalidateLinkIndex(tenantID string, clientID int) {
	m.attributionStore.InvalidateLinkIndex(tenantID, clientID)
	if m.logger != nil {
		m.logger.Cache().Debug("Link index invalidated", "tenantId", tenantID, "clientId", clientID)
	}
}

// =============================================================================
// Visitor Stats Operations
// =============================================================================

func (m *Manager) GetVisitorStats(tenantID, visitorID string) (*visitor.VisitorStats, bool) {
	start := time.Now()
	stats, found := m.attributionStore.GetVisitorStats(tenantID, visitorID)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.LogCacheOperation("get", "visitorStats", found, time.Since(start), tenantID)
	}
	return stats, found
}

func (m *Manager) SetVisitorStats(tenantID, visitorID string, stats *visitor.VisitorStats) {
	start := time.Now()
	m.attributionStore.SetVisitorStats(tenantID, visitorID, stats)
	m.updateTenantAccessTime(tenantID)

	if m.logger != nil {
		m.logger.LogCacheOperation("set", "visitorStats", true, time.Since(start), tenantID)
	}
}

func (m *Manager) InvalidateVisitorStats(tenantID, visitorID string) {
	m.attributionStore.InvalidateVisitorStats(tenantID, visitorID)
	if m.logger != nil {
		m.logger.Cache().Debug("Visitor stats invalidated", "tenantId", tenantID, "visitorId", visitorID)
	}
}

// =============================================================================
// Cache Management Operations
// =============================================================================

func (m *Manager) InvalidateTenant(tenantID string) {
	m.attributionStore.InvalidateTenant(tenantID)
	if m.logger != nil {
		m.logger.Cache().Info("Tenant cache invalidated", "tenantId", tenantID)
	}
}

// PurgeExpired sweeps expired entries across every initialized tenant.
func (m *Manager) PurgeExpired() int {
	purged := 0
	for _, tenantID := range m.attributionStore.GetTenantIDs() {
		purged += m.attributionStore.PurgeExpired(tenantID)
	}

	if purged > 0 && m.logger != nil {
		m.logger.Cache().Info("Expired cache entries purged", "count", purged)
	}
	return purged
}

// GetSummary returns cache status for a tenant, for the status endpoint.
func (m *Manager) GetSummary(tenantID string) map[string]any {
	return m.attributionStore.GetSummary(tenantID)
}
