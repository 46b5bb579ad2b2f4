package services

import (
	"fmt"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/security"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
)

// AttributionService owns the attribution ledger: one record per
// (visitor, campaign) pair with immutable first-touch fields and a
// fully replaced last-touch snapshot.
type AttributionService struct {
	logger *logging.ChanneledLogger
	now    func() time.Time
	newID  func() string
}

// NewAttributionService creates a new attribution service.
func NewAttributionService(logger *logging.ChanneledLogger) *AttributionService {
	return &AttributionService{
		logger: logger,
		now:    time.Now,
		newID:  security.GenerateULID,
	}
}

// Upsert records a match between a visitor and a campaign. On first contact
// a new attribution is created with first-touch fields; afterwards only the
// last-touch snapshot is replaced. Returns true when a record was created.
func (s *AttributionService) Upsert(tenantCtx *tenant.Context, visitorID string, campaignID campaign.ID, matchedURLs []string, accountID string) (bool, error) {
	created, err := s.upsert(tenantCtx.AttributionRepo(), visitorID, campaignID, matchedURLs, accountID)
	if err != nil {
		s.logger.LogWriteFailure("attribution_upsert", tenantCtx.TenantID, err, map[string]any{
			"visitorId":  visitorID,
			"campaignId": campaignID.String(),
		})
		return false, err
	}

	tenantCtx.CacheManager.InvalidateVisitorStats(tenantCtx.TenantID, visitorID)
	return created, nil
}

// ExistsFor reports whether an attribution exists for the pair.
func (s *AttributionService) ExistsFor(tenantCtx *tenant.Context, visitorID string, campaignID campaign.ID) (bool, error) {
	existing, err := tenantCtx.AttributionRepo().FindByVisitorAndCampaign(visitorID, campaignID.String())
	if err != nil {
		return false, fmt.Errorf("attribution lookup failed: %w", err)
	}
	return existing != nil, nil
}

// AttributionsFor returns all attributions for a visitor, most recent first.
func (s *AttributionService) AttributionsFor(tenantCtx *tenant.Context, visitorID string) ([]*visitor.Attribution, error) {
	return tenantCtx.AttributionRepo().FindByVisitorID(visitorID)
}

// StatsFor aggregates a visitor's attributions across all campaigns,
// serving from the tenant cache when the snapshot is fresh.
func (s *AttributionService) StatsFor(tenantCtx *tenant.Context, visitorID string) (*visitor.VisitorStats, error) {
	if stats, found := tenantCtx.CacheManager.GetVisitorStats(tenantCtx.TenantID, visitorID); found {
		return stats, nil
	}

	stats, err := tenantCtx.AttributionRepo().StatsForVisitor(visitorID)
	if err != nil {
		return nil, fmt.Errorf("visitor stats query failed: %w", err)
	}

	tenantCtx.CacheManager.SetVisitorStats(tenantCtx.TenantID, visitorID, stats)
	return stats, nil
}

// Promote advances an attribution's room progression. Returns true when the
// visitor newly became a prospect. Absent attributions are a no-op.
func (s *AttributionService) Promote(tenantCtx *tenant.Context, visitorID string, campaignID campaign.ID, room campaign.RoomType) (bool, error) {
	promoted, err := s.promote(tenantCtx.AttributionRepo(), visitorID, campaignID, room)
	if err != nil {
		s.logger.LogWriteFailure("attribution_promote", tenantCtx.TenantID, err, map[string]any{
			"visitorId":  visitorID,
			"campaignId": campaignID.String(),
		})
		return false, err
	}
	return promoted, nil
}

func (s *AttributionService) upsert(repo visitor.AttributionRepository, visitorID string, campaignID campaign.ID, matchedURLs []string, accountID string) (bool, error) {
	deduped := dedupeURLs(matchedURLs)
	now := s.now().UTC()

	existing, err := repo.FindByVisitorAndCampaign(visitorID, campaignID.String())
	if err != nil {
		return false, fmt.Errorf("attribution lookup failed: %w", err)
	}

	if existing == nil {
		a := &visitor.Attribution{
			ID:               s.newID(),
			VisitorID:        visitorID,
			CampaignID:       campaignID.String(),
			AccountID:        accountID,
			FirstVisitAt:     now,
			LastVisitAt:      now,
			MatchedPages:     deduped,
			TotalPageViews:   len(deduped),
			UniquePagesCount: len(deduped),
			IsProspect:       false,
			CurrentRoom:      campaign.RoomNone,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if len(deduped) > 0 {
			entryPage := deduped[0]
			a.EntryPage = &entryPage
		}

		if err := repo.Create(a); err != nil {
			return false, fmt.Errorf("attribution create failed: %w", err)
		}
		return true, nil
	}

	existing.LastVisitAt = now
	existing.MatchedPages = deduped
	existing.TotalPageViews = len(deduped)
	existing.UniquePagesCount = len(deduped)
	existing.UpdatedAt = now

	if err := repo.Update(existing); err != nil {
		return false, fmt.Errorf("attribution update failed: %w", err)
	}
	return false, nil
}

func (s *AttributionService) promote(repo visitor.AttributionRepository, visitorID string, campaignID campaign.ID, room campaign.RoomType) (bool, error) {
	existing, err := repo.FindByVisitorAndCampaign(visitorID, campaignID.String())
	if err != nil {
		return false, fmt.Errorf("attribution lookup failed: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	deeper := existing.CurrentRoom == campaign.RoomNone || room.Rank() > existing.CurrentRoom.Rank()
	if room == campaign.RoomNone || !deeper {
		return false, nil
	}

	wasProspect := existing.IsProspect
	existing.CurrentRoom = room
	existing.IsProspect = existing.IsProspect || room == campaign.RoomOffer
	existing.UpdatedAt = s.now().UTC()

	if err := repo.Promote(existing); err != nil {
		return false, fmt.Errorf("attribution promote failed: %w", err)
	}
	return existing.IsProspect && !wasProspect, nil
}

// dedupeURLs removes repeated URLs preserving first-occurrence order.
func dedupeURLs(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(urls))
	deduped := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		deduped = append(deduped, u)
	}
	return deduped
}
