// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/RoomReachHQ/roomreach-go/internal/application/services"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/caching/manager"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/email"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/messaging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Attribution services (stateless singletons)
	CampaignIndexService  *services.CampaignIndexService
	AttributionService    *services.AttributionService
	AttributionRunService *services.AttributionRunService
	AuthService           *services.AuthService
	DBService             *services.DBService

	// Infrastructure dependencies
	TenantManager   *tenant.Manager
	CacheManager    *manager.Manager
	FeedBroadcaster *messaging.FeedBroadcaster
	EmailService    email.Service
	Logger          *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(tenantManager *tenant.Manager, cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Container {
	feedBroadcaster := messaging.NewFeedBroadcaster(cacheManager)

	// Email is optional; without an API key the prospect alerts are skipped.
	emailService, err := email.NewService()
	if err != nil {
		logger.System().Warn("Email service unavailable, prospect alerts disabled", "reason", err.Error())
		emailService = nil
	}

	indexService := services.NewCampaignIndexService(logger)
	attributionService := services.NewAttributionService(logger)

	return &Container{
		CampaignIndexService:  indexService,
		AttributionService:    attributionService,
		AttributionRunService: services.NewAttributionRunService(indexService, attributionService, emailService, feedBroadcaster, logger),
		AuthService:           services.NewAuthService(logger),
		DBService:             services.NewDBService(logger),

		TenantManager:   tenantManager,
		CacheManager:    cacheManager,
		FeedBroadcaster: feedBroadcaster,
		EmailService:    emailService,
		Logger:          logger,
	}
}
