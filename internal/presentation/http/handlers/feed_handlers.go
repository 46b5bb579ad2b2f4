package handlers

import (
	"net/http"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/messaging"
	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/observability/logging"
	"github.com/RoomReachHQ/roomreach-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	feedWriteWait = 10 * time.Second
	feedPongWait  = 60 * time.Second
	feedPingEvery = (feedPongWait * 9) / 10
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is validated by the domain middleware upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHandlers contains the websocket dashboard feed handlers
type FeedHandlers struct {
	broadcaster *messaging.FeedBroadcaster
	logger      *logging.ChanneledLogger
}

// NewFeedHandlers creates feed handlers with injected dependencies
func NewFeedHandlers(broadcaster *messaging.FeedBroadcaster, logger *logging.ChanneledLogger) *FeedHandlers {
	return &FeedHandlers{
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetFeed handles GET /api/v1/feed - upgrades to a websocket and streams
// attribution run summaries and heartbeats for the tenant.
func (h *FeedHandlers) GetFeed(c *gin.Context) {
	tenantCtx, exists := middleware.GetTenantContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Feed().Error("Websocket upgrade failed", "error", err.Error(), "tenantId", tenantCtx.TenantID)
		return
	}

	client := &messaging.FeedClient{
		Conn:     conn,
		TenantID: tenantCtx.TenantID,
		Send:     make(chan []byte, 16),
	}
	h.broadcaster.Register(client)

	h.logger.Feed().Info("Dashboard feed client connected", "tenantId", tenantCtx.TenantID)

	go h.writePump(client)
	go h.readPump(client)
}

// writePump drains the client's send channel onto the websocket.
func (h *FeedHandlers) writePump(client *messaging.FeedClient) {
	ticker := time.NewTicker(feedPingEvery)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames and unregisters on disconnect.
func (h *FeedHandlers) readPump(client *messaging.FeedClient) {
	defer func() {
		h.broadcaster.Unregister(client)
		client.Conn.Close()
		h.logger.Feed().Info("Dashboard feed client disconnected", "tenantId", client.TenantID)
	}()

	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(feedPongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(feedPongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
