// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/application/container"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/database"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/server"
	"github.com/RoomReachHQ/roomreach-go/pkg/config"
	"github.com/gin-gonic/gin"
)

// Initialize performs the complete multi-tenant startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("RoomReach attribution server starting...")

	// Step 1: Create the channeled logger
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Initialize tenant system
	logger.Startup().Info("Initializing tenant system...")
	tenantManager := tenant.NewManager(logger)

	// Step 3: Load tenant registry to discover all tenants
	logger.Startup().Info("Loading tenant registry...")
	registry, err := tenant.LoadTenantRegistry()
	if err != nil {
		return fmt.Errorf("failed to load tenant registry: %w", err)
	}

	if len(registry.Tenants) == 0 {
		logger.Startup().Info("No tenants found in registry, creating default tenant")
		if err := tenant.RegisterTenant("default"); err != nil {
			return fmt.Errorf("failed to register default tenant: %w", err)
		}
		registry, err = tenant.LoadTenantRegistry()
		if err != nil {
			return fmt.Errorf("failed to reload registry: %w", err)
		}
	}

	logger.Startup().Info("Tenant registry loaded", "tenants", len(registry.Tenants))

	// Step 4: Pre-activate inactive tenants only
	logger.Startup().Info("Starting tenant pre-activation...")
	if err := tenantManager.PreActivateAllTenants(); err != nil {
		return fmt.Errorf("tenant pre-activation failed: %w", err)
	}

	// Step 5: Validate tenant activation
	if err := tenantManager.ValidatePreActivation(); err != nil {
		return fmt.Errorf("tenant validation failed: %w", err)
	}

	activeCount, err := tenantManager.GetActiveTenantCount()
	if err != nil {
		return fmt.Errorf("failed to get active tenant count: %w", err)
	}
	logger.Startup().Info("Active tenant connections verified", "count", activeCount)

	// Step 6: Ensure the attribution schema exists on every active tenant
	logger.Startup().Info("Ensuring attribution schema...")
	if err := ensureSchemas(tenantManager, logger); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	// Step 7: Initialize cache system for active tenants
	logger.Startup().Info("Initializing cache system...")
	cacheManager := tenantManager.GetCacheManager()

	registry, err = tenant.LoadTenantRegistry()
	if err != nil {
		return fmt.Errorf("failed to reload registry after activation: %w", err)
	}
	for tenantID, tenantInfo := range registry.Tenants {
		if tenantInfo.Status == "active" {
			cacheManager.InitializeTenant(tenantID)
		}
	}

	// Step 8: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(tenantManager, cacheManager, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 9: Start the dashboard feed broadcaster
	go appContainer.FeedBroadcaster.Run()
	logger.Startup().Info("Dashboard feed broadcaster started", "tick", config.DashboardFeedTick)

	// Step 10: Start background maintenance workers
	go runCacheCleanup(ctx, appContainer, logger)
	go runPoolCleanup(ctx, logger)
	logger.Startup().Info("Background maintenance workers started")

	// Step 11: Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = config.Port
	}
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"activeTenants", activeCount,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing tenant manager...")
	if err := tenantManager.Close(); err != nil {
		logger.Shutdown().Error("Error closing tenant manager", "error", err.Error())
	} else {
		logger.Shutdown().Info("Tenant manager closed successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// ensureSchemas runs the table creator against every active tenant database.
func ensureSchemas(tenantManager *tenant.Manager, logger *logging.ChanneledLogger) error {
	registry, err := tenant.LoadTenantRegistry()
	if err != nil {
		return err
	}

	tableCreator := database.NewTableCreator()
	for tenantID, tenantInfo := range registry.Tenants {
		if tenantInfo.Status != "active" {
			continue
		}

		tenantCtx, err := tenantManager.NewContextFromID(tenantID)
		if err != nil {
			return fmt.Errorf("failed to open tenant %s for schema creation: %w", tenantID, err)
		}

		if err := tableCreator.CreateSchema(tenantCtx.Database.Conn); err != nil {
			return fmt.Errorf("schema creation failed for tenant %s: %w", tenantID, err)
		}
		logger.Startup().Debug("Schema verified", "tenantId", tenantID)
	}

	return nil
}

// runCacheCleanup periodically purges expired cache entries.
func runCacheCleanup(ctx context.Context, appContainer *container.Container, logger *logging.ChanneledLogger) {
	ticker := time.NewTicker(config.CacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Shutdown().Debug("Cache cleanup worker stopped")
			return
		case <-ticker.C:
			appContainer.CacheManager.PurgeExpired()
		}
	}
}

// runPoolCleanup periodically drops dead or aged database connections.
func runPoolCleanup(ctx context.Context, logger *logging.ChanneledLogger) {
	ticker := time.NewTicker(config.DBPoolCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Shutdown().Debug("Database pool cleanup worker stopped")
			return
		case <-ticker.C:
			tenant.CleanupStaleConnections()
		}
	}
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
