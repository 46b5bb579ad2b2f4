package handlers

import (
	"log/slog"
	"net/http"

	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/tenant"
	"github.com/gin-gonic/gin"
)

// AdminHandlers exposes operational endpoints restricted to admin operators.
type AdminHandlers struct {
	logger *logging.ChanneledLogger
}

// NewAdminHandlers creates admin handlers with injected dependencies
func NewAdminHandlers(logger *logging.ChanneledLogger) *AdminHandlers {
	return &AdminHandlers{logger: logger}
}

// GetLogLevels handles GET /api/v1/admin/logs/levels
func (h *AdminHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": h.logger.GetChannelLevels()})
}

type logLevelRequest struct {
	Channel string `json:"channel" binding:"required"`
	Level   string `json:"level" binding:"required"`
}

// PutLogLevel handles PUT /api/v1/admin/logs/levels - runtime log level changes
func (h *AdminHandlers) PutLogLevel(c *gin.Context) {
	var req logLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel and level are required"})
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(req.Level)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown log level"})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"channel": req.Channel, "level": level.String()})
}

// GetPoolInfo handles GET /api/v1/admin/db/pool - per-pool connection statistics
func (h *AdminHandlers) GetPoolInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pools": tenant.GetConnectionPoolInfo()})
}
