package handlers

import (
	"net/http"

	"github.com/RoomReachHQ/roomreach-go/internal/application/services"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// DBHandlers contains the database status HTTP handlers
type DBHandlers struct {
	dbService *services.DBService
	logger    *logging.ChanneledLogger
}

// NewDBHandlers creates db handlers with injected dependencies
func NewDBHandlers(dbService *services.DBService, logger *logging.ChanneledLogger) *DBHandlers {
	return &DBHandlers{
		dbService: dbService,
		logger:    logger,
	}
}

// GetDatabaseStatus handles GET /api/v1/db/status
func (h *DBHandlers) GetDatabaseStatus(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	status := h.dbService.CheckStatus(tenantCtx)
	c.JSON(http.StatusOK, status)
}
