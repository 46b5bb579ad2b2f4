package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/application/services"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AttributionHandlers contains the attribution run and ledger HTTP handlers
type AttributionHandlers struct {
	runService         *services.AttributionRunService
	attributionService *services.AttributionService
	indexService       *services.CampaignIndexService
	logger             *logging.ChanneledLogger
}

// NewAttributionHandlers creates attribution handlers with injected dependencies
func NewAttributionHandlers(
	runService *services.AttributionRunService,
	attributionService *services.AttributionService,
	indexService *services.CampaignIndexService,
	logger *logging.ChanneledLogger,
) *AttributionHandlers {
	return &AttributionHandlers{
		runService:         runService,
		attributionService: attributionService,
		indexService:       indexService,
		logger:             logger,
	}
}

type runRequest struct {
	ClientID  int    `json:"clientId" binding:"required"`
	AccountID string `json:"accountId"`
}

// PostRun handles POST /api/v1/attribution/run - executes an attribution pass for a client
func (h *AttributionHandlers) PostRun(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	start := time.Now()

	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId is required"})
		return
	}

	summary, err := h.runService.RunForClient(tenantCtx, req.ClientID, req.AccountID)
	if err != nil {
		h.logger.Attribution().Error("Attribution run request failed",
			"error", err.Error(), "tenantId", tenantCtx.TenantID, "clientId", req.ClientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "attribution run failed"})
		return
	}

	h.logger.Attribution().Debug("Attribution run request completed",
		"tenantId", tenantCtx.TenantID, "clientId", req.ClientID, "duration", time.Since(start))
	c.JSON(http.StatusOK, summary)
}

// GetIndexPreview handles GET /api/v1/campaigns/index/:clientId - inspects the content link index
func (h *AttributionHandlers) GetIndexPreview(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	clientID, err := strconv.Atoi(c.Param("clientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId must be an integer"})
		return
	}

	idx, err := h.indexService.BuildForClient(tenantCtx, clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "index build failed"})
		return
	}

	campaigns := make([]gin.H, 0, idx.CampaignCount())
	for _, id := range idx.Campaigns() {
		campaigns = append(campaigns, gin.H{
			"campaignId": id.Int(),
			"links":      idx.Links(id),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"clientId":  idx.ClientID,
		"builtAt":   idx.BuiltAt,
		"linkCount": idx.LinkCount(),
		"campaigns": campaigns,
	})
}
