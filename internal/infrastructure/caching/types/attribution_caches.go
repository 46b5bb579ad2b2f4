// Package types defines the cache payload structures shared by the stores.
package types

import (
	"sync"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
)

// TenantAttributionCache holds all cached attribution state for one tenant.
type TenantAttributionCache struct {
	Mu           sync.RWMutex
	LinkIndexes  map[int]*LinkIndexCache
	VisitorStats map[string]*VisitorStatsCache
	LastUpdated  time.Time
}

// LinkIndexCache is a warmed content link index for a single client.
type LinkIndexCache struct {
	Index    *campaign.ContentLinkIndex
	CachedAt time.Time
}

// VisitorStatsCache is a computed stats snapshot for a single visitor.
type VisitorStatsCache struct {
	Stats      *visitor.VisitorStats
	ComputedAt time.Time
}
