// Package tenant provides tenant context management for multi-tenant support.
package tenant

import (
	domainCampaign "github.com/RoomReachHQ/roomreach-go/internal/domain/campaign"
	domainOperator "github.com/RoomReachHQ/roomreach-go/internal/domain/operator"
	domainVisitor "github.com/RoomReachHQ/roomreach-go/internal/domain/visitor"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/caching/manager"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	persistenceCampaign "github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/campaign"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/database"
	persistenceOperator "github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/operator"
	persistenceVisitor "github.com/RoomReachHQ/roomreach-go/internal/infrastructure/persistence/visitor"
)

// Context holds tenant-specific request context
type Context struct {
	TenantID     string
	Config       *Config
	Database     *Database
	Status       string
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
}

// Close cleans up the tenant context
func (ctx *Context) Close() error {
	if ctx.Database != nil {
		return ctx.Database.Close()
	}
	return nil
}

// GetTenantID returns the tenant ID for this context
func (ctx *Context) GetTenantID() string {
	return ctx.TenantID
}

// GetConfig returns the tenant configuration
func (ctx *Context) GetConfig() *Config {
	return ctx.Config
}

// GetDatabase returns the tenant database connection
func (ctx *Context) GetDatabase() *Database {
	return ctx.Database
}

// GetStatus returns the tenant status
func (ctx *Context) GetStatus() string {
	return ctx.Status
}

// GetCacheManager returns the cache manager
func (ctx *Context) GetCacheManager() *manager.Manager {
	return ctx.CacheManager
}

// IsActive returns true if the tenant is active
func (ctx *Context) IsActive() bool {
	return ctx.Status == "active"
}

// GetDatabaseInfo returns database connection information for logging
func (ctx *Context) GetDatabaseInfo() string {
	if ctx.Database != nil {
		return ctx.Database.GetConnectionInfo()
	}
	return "no database connection"
}

// =============================================================================
// Repository Factory Methods
// =============================================================================

// ContentLinkRepo returns a content link repository instance.
// It returns the interface type from the domain layer.
func (ctx *Context) ContentLinkRepo() domainCampaign.ContentLinkRepository {
	db := &database.DB{DB: ctx.Database.Conn}
	return persistenceCampaign.NewSQLContentLinkRepository(db, ctx.Logger)
}

// VisitorRepo returns a visitor repository instance.
// It returns the interface type from the domain layer.
func (ctx *Context) VisitorRepo() domainVisitor.VisitorRepository {
	db := &database.DB{DB: ctx.Database.Conn}
	return persistenceVisitor.NewSQLVisitorRepository(db)
}

// AttributionRepo returns an attribution repository instance.
// It returns the interface type from the domain layer.
func (ctx *Context) AttributionRepo() domainVisitor.AttributionRepository {
	db := &database.DB{DB: ctx.Database.Conn}
	return persistenceVisitor.NewSQLAttributionRepository(db, ctx.Logger)
}

// OperatorRepo returns an operator repository instance.
// It returns the interface type from the domain layer.
func (ctx *Context) OperatorRepo() domainOperator.Repository {
	db := &database.DB{DB: ctx.Database.Conn}
	return persistenceOperator.NewSQLOperatorRepository(db)
}
