// Package services provides attribution orchestration
package services

import (
	"fmt"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
)

// CampaignIndexService builds content link indexes for matching. The index
// is always returned as an explicit value; the cache only shortcuts the
// database load, callers still receive and pass the index themselves.
type CampaignIndexService struct {
	logger *logging.ChanneledLogger
	now    func() time.Time
}

// NewCampaignIndexService creates a new campaign index service.
func NewCampaignIndexService(logger *logging.ChanneledLogger) *CampaignIndexService {
	return &CampaignIndexService{
		logger: logger,
		now:    time.Now,
	}
}

// BuildForClient returns the content link index for a client, warming the
// tenant cache on a miss. A client with no active campaigns yields an empty
// index, not an error.
func (s *CampaignIndexService) BuildForClient(tenantCtx *tenant.Context, clientID int) (*campaign.ContentLinkIndex, error) {
	if idx, found := tenantCtx.CacheManager.GetLinkIndex(tenantCtx.TenantID, clientID); found {
		return idx, nil
	}

	start := time.Now()
	idx, err := s.buildForClient(tenantCtx.ContentLinkRepo(), clientID)
	if err != nil {
		s.logger.Campaign().Error("Failed to build content link index",
			"error", err.Error(), "tenantId", tenantCtx.TenantID, "clientId", clientID)
		return nil, fmt.Errorf("failed to build content link index for client %d: %w", clientID, err)
	}

	s.logger.Campaign().Info("Content link index built",
		"tenantId", tenantCtx.TenantID,
		"clientId", clientID,
		"campaigns", idx.CampaignCount(),
		"links", idx.LinkCount(),
		"duration", time.Since(start))

	tenantCtx.CacheManager.SetLinkIndex(tenantCtx.TenantID, clientID, idx)
	return idx, nil
}

// Invalidate drops the warmed index for a client, forcing a rebuild on the
// next run. Called when campaign settings change.
func (s *CampaignIndexService) Invalidate(tenantCtx *tenant.Context, clientID int) {
	tenantCtx.CacheManager.InvalidateLinkIndex(tenantCtx.TenantID, clientID)
}

func (s *CampaignIndexService) buildForClient(repo campaign.ContentLinkRepository, clientID int) (*campaign.ContentLinkIndex, error) {
	links, err := repo.LoadActiveForClient(clientID)
	if err != nil {
		return nil, err
	}

	idx := campaign.NewContentLinkIndex(clientID, s.now().UTC())
	for _, link := range links {
		idx.Add(link)
	}
	return idx, nil
}
