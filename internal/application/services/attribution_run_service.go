package services

import (
	"fmt"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/domain/matching"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/email"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/messaging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
	"github.com/RoomReachHQ/roomreach-go/pkg/config"
)

// AttributionRunService orchestrates a full attribution pass for one client:
// build the content link index, match every visitor's page set against it,
// and upsert the ledger. A failing visitor is logged and skipped; the run
// itself never aborts.
type AttributionRunService struct {
	indexService       *CampaignIndexService
	attributionService *AttributionService
	emailService       email.Service
	feed               messaging.FeedPublisher
	logger             *logging.ChanneledLogger
}

// NewAttributionRunService creates a new attribution run service with its dependencies.
func NewAttributionRunService(
	indexService *CampaignIndexService,
	attributionService *AttributionService,
	emailService email.Service,
	feed messaging.FeedPublisher,
	logger *logging.ChanneledLogger,
) *AttributionRunService {
	return &AttributionRunService{
		indexService:       indexService,
		attributionService: attributionService,
		emailService:       emailService,
		feed:               feed,
		logger:             logger,
	}
}

// RunForClient executes one attribution pass over the client's visitors.
func (s *AttributionRunService) RunForClient(tenantCtx *tenant.Context, clientID int, accountID string) (*messaging.RunSummary, error) {
	start := time.Now()
	s.logger.Attribution().Info("Attribution run started", "tenantId", tenantCtx.TenantID, "clientId", clientID)

	idx, err := s.indexService.BuildForClient(tenantCtx, clientID)
	if err != nil {
		return nil, fmt.Errorf("attribution run aborted, index build failed: %w", err)
	}

	visitors, err := tenantCtx.VisitorRepo().FindByClientID(clientID, config.MaxVisitorsPerRun)
	if err != nil {
		return nil, fmt.Errorf("attribution run aborted, visitor load failed: %w", err)
	}

	summary := messaging.RunSummary{ClientID: clientID}
	summary.VisitorsScanned = len(visitors)

	for _, v := range visitors {
		pages := v.PageSet()
		if len(pages) == 0 {
			continue
		}

		matches := matching.MatchVisitorToCampaigns(pages, idx)
		if len(matches) == 0 {
			continue
		}
		summary.VisitorsMatched++

		failed := false
		for _, campaignID := range idx.Campaigns() {
			matchedURLs, ok := matches[campaignID]
			if !ok {
				continue
			}

			created, err := s.attributionService.Upsert(tenantCtx, v.ID, campaignID, matchedURLs, accountID)
			if err != nil {
				s.logger.Attribution().Error("Visitor upsert failed, skipping",
					"error", err.Error(),
					"tenantId", tenantCtx.TenantID,
					"visitorId", v.ID,
					"campaignId", campaignID.String())
				failed = true
				continue
			}
			if created {
				summary.AttributionsCreated++
			} else {
				summary.AttributionsUpdated++
			}

			s.advanceRoom(tenantCtx, idx, v.ID, campaignID, matchedURLs)
		}
		if failed {
			summary.VisitorsFailed++
		}
	}

	duration := time.Since(start)
	summary.DurationMs = float64(duration.Microseconds()) / 1000.0
	summary.CompletedAt = time.Now().UTC().Format(time.RFC3339)

	s.logger.Attribution().Info("Attribution run completed",
		"tenantId", tenantCtx.TenantID,
		"clientId", clientID,
		"visitorsScanned", summary.VisitorsScanned,
		"visitorsMatched", summary.VisitorsMatched,
		"created", summary.AttributionsCreated,
		"updated", summary.AttributionsUpdated,
		"failed", summary.VisitorsFailed,
		"duration", duration)

	if s.feed != nil {
		s.feed.PublishRunSummary(tenantCtx.TenantID, summary)
	}

	return &summary, nil
}

// advanceRoom moves the attribution to the deepest room the visitor's
// matched URLs reached and fires the prospect alert on a new promotion.
// Promotion failures never fail the run.
func (s *AttributionRunService) advanceRoom(tenantCtx *tenant.Context, idx *campaign.ContentLinkIndex, visitorID string, campaignID campaign.ID, matchedURLs []string) {
	room := deepestRoomFor(idx, campaignID, matchedURLs)
	if room == campaign.RoomNone {
		return
	}

	newlyProspect, err := s.attributionService.Promote(tenantCtx, visitorID, campaignID, room)
	if err != nil {
		s.logger.Attribution().Error("Room promotion failed",
			"error", err.Error(),
			"tenantId", tenantCtx.TenantID,
			"visitorId", visitorID,
			"campaignId", campaignID.String())
		return
	}

	if newlyProspect {
		s.sendProspectAlert(tenantCtx, visitorID, campaignID, room, matchedURLs)
	}
}

func (s *AttributionRunService) sendProspectAlert(tenantCtx *tenant.Context, visitorID string, campaignID campaign.ID, room campaign.RoomType, matchedURLs []string) {
	if s.emailService == nil || tenantCtx.Config.AlertEmail == "" {
		return
	}

	err := s.emailService.SendProspectAlertEmail(
		tenantCtx.Config.AlertEmail,
		visitorID,
		fmt.Sprintf("campaign %s", campaignID.String()),
		string(room),
		matchedURLs,
	)
	if err != nil {
		s.logger.Alert().Error("Prospect alert email failed",
			"error", err.Error(),
			"tenantId", tenantCtx.TenantID,
			"visitorId", visitorID,
			"campaignId", campaignID.String())
		return
	}

	s.logger.Alert().Info("Prospect alert sent",
		"tenantId", tenantCtx.TenantID,
		"visitorId", visitorID,
		"campaignId", campaignID.String())
}

// deepestRoomFor finds the deepest room among the campaign's content links
// that any of the matched URLs reached.
func deepestRoomFor(idx *campaign.ContentLinkIndex, campaignID campaign.ID, matchedURLs []string) campaign.RoomType {
	deepest := campaign.RoomNone

	for _, page := range matchedURLs {
		visitorPath := matching.Normalize(page)
		if visitorPath == "" {
			continue
		}
		for _, link := range idx.Links(campaignID) {
			if !matching.Matches(visitorPath, matching.Normalize(link.URL)) {
				continue
			}
			if link.Room == campaign.RoomNone {
				continue
			}
			if deepest == campaign.RoomNone || link.Room.Rank() > deepest.Rank() {
				deepest = link.Room
			}
		}
	}

	return deepest
}
