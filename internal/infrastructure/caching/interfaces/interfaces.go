// Package interfaces defines the cache contracts consumed by services.
package interfaces

import (
	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
)

// LinkIndexCache provides warmed content link indexes keyed by client.
type LinkIndexCache interface {
	GetLinkIndex(tenantID string, clientID int) (*campaign.ContentLinkIndex, bool)
	SetLinkIndex(tenantID string, clientID int, idx *campaign.ContentLinkIndex)
	InvalidateLinkIndex(tenantID string, clientID int)
}

// VisitorStatsCache provides computed visitor stats snapshots.
type VisitorStatsCache interface {
	GetVisitorStats(tenantID, visitorID string) (*visitor.VisitorStats, bool)
	SetVisitorStats(tenantID, visitorID string, stats *visitor.VisitorStats)
	InvalidateVisitorStats(tenantID, visitorID string)
}

// Cache is the full cache surface exposed by the manager.
type Cache interface {
	LinkIndexCache
	VisitorStatsCache
	InitializeTenant(tenantID string)
	InvalidateTenant(tenantID string)
}
