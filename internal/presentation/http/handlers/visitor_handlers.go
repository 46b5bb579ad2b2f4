package handlers

import (
	"net/http"

	"github.com/RoomReachHQ/roomreach-go/internal/application/services"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// VisitorHandlers contains the visitor ledger HTTP handlers
type VisitorHandlers struct {
	attributionService *services.AttributionService
	logger             *logging.ChanneledLogger
}

// NewVisitorHandlers creates visitor handlers with injected dependencies
func NewVisitorHandlers(attributionService *services.AttributionService, logger *logging.ChanneledLogger) *VisitorHandlers {
	return &VisitorHandlers{
		attributionService: attributionService,
		logger:             logger,
	}
}

// GetStats handles GET /api/v1/visitors/:visitorId/stats - aggregate attribution stats
func (h *VisitorHandlers) GetStats(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	visitorID := c.Param("visitorId")
	if visitorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visitorId is required"})
		return
	}

	stats, err := h.attributionService.StatsFor(tenantCtx, visitorID)
	if err != nil {
		h.logger.Attribution().Error("Visitor stats request failed",
			"error", err.Error(), "tenantId", tenantCtx.TenantID, "visitorId", visitorID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats lookup failed"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetAttributions handles GET /api/v1/visitors/:visitorId/attributions - full ledger rows
func (h *VisitorHandlers) GetAttributions(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	visitorID := c.Param("visitorId")
	if visitorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visitorId is required"})
		return
	}

	attributions, err := h.attributionService.AttributionsFor(tenantCtx, visitorID)
	if err != nil {
		h.logger.Attribution().Error("Visitor attributions request failed",
			"error", err.Error(), "tenantId", tenantCtx.TenantID, "visitorId", visitorID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "attribution lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"visitorId":    visitorID,
		"attributions": attributions,
	})
}
