// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/RoomReachHQ/roomreach-go/internal/application/container"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/handlers"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger)
	attributionHandlers := handlers.NewAttributionHandlers(
		container.AttributionRunService,
		container.AttributionService,
		container.CampaignIndexService,
		container.Logger,
	)
	visitorHandlers := handlers.NewVisitorHandlers(container.AttributionService, container.Logger)
	dbHandlers := handlers.NewDBHandlers(container.DBService, container.Logger)
	feedHandlers := handlers.NewFeedHandlers(container.FeedBroadcaster, container.Logger)
	adminHandlers := handlers.NewAdminHandlers(container.Logger)

	// API routes with tenant middleware
	api := r.Group("/api/v1")
	api.Use(middleware.TenantMiddleware(container.TenantManager))
	api.Use(middleware.DomainValidationMiddleware(container.TenantManager))
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		// Database status
		api.GET("/db/status", dbHandlers.GetDatabaseStatus)

		// Dashboard feed (websocket; token rides the query string)
		api.GET("/feed", feedHandlers.GetFeed)

		// Attribution endpoints, operator-only
		attribution := api.Group("/attribution")
		attribution.Use(authHandlers.AuthMiddleware())
		{
			attribution.POST("/run", attributionHandlers.PostRun)
		}

		campaigns := api.Group("/campaigns")
		campaigns.Use(authHandlers.AuthMiddleware())
		{
			campaigns.GET("/index/:clientId", attributionHandlers.GetIndexPreview)
		}

		visitors := api.Group("/visitors")
		visitors.Use(authHandlers.AuthMiddleware())
		{
			visitors.GET("/:visitorId/stats", visitorHandlers.GetStats)
			visitors.GET("/:visitorId/attributions", visitorHandlers.GetAttributions)
		}

		// Operational endpoints, admin role only
		admin := api.Group("/admin")
		admin.Use(authHandlers.AuthMiddleware(), authHandlers.AdminOnlyMiddleware())
		{
			admin.GET("/logs/levels", adminHandlers.GetLogLevels)
			admin.PUT("/logs/levels", adminHandlers.PutLogLevel)
			admin.GET("/db/pool", adminHandlers.GetPoolInfo)
		}
	}

	return r
}
