package messaging

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/RoomReachHQ/roomreach-go/internal/infrastructure/caching/manager"
	"github.com/RoomReachHQ/roomreach-go/pkg/config"
	"github.com/gorilla/websocket"
)

// FeedClient represents a single connected attribution dashboard client.
type FeedClient struct {
	Conn     *websocket.Conn
	TenantID string
	Send     chan []byte
}

// FeedPayload is the envelope sent to dashboard clients. Type is either
// "run" for a completed attribution run or "heartbeat" for the periodic tick.
type FeedPayload struct {
	Type         string         `json:"type"`
	RunSummary   *RunSummary    `json:"runSummary,omitempty"`
	CacheSummary map[string]any `json:"cacheSummary,omitempty"`
	ClientCount  int            `json:"clientCount"`
	SentAt       string         `json:"sentAt"`
}

type runEvent struct {
	tenantID string
	summary  RunSummary
}

// FeedBroadcaster manages all connected dashboard clients and broadcasts
// attribution run results and periodic heartbeats.
type FeedBroadcaster struct {
	tenantClients map[string]map[*FeedClient]bool
	register      chan *FeedClient
	unregister    chan *FeedClient
	runs          chan runEvent
	cacheManager  *manager.Manager
	lastRuns      map[string]*RunSummary
	mu            sync.RWMutex
}

// Interface assertion to ensure FeedBroadcaster implements FeedPublisher.
var _ FeedPublisher = (*FeedBroadcaster)(nil)

// NewFeedBroadcaster creates a new broadcaster instance.
func NewFeedBroadcaster(cm *manager.Manager) *FeedBroadcaster {
	return &FeedBroadcaster{
		tenantClients: make(map[string]map[*FeedClient]bool),
		register:      make(chan *FeedClient),
		unregister:    make(chan *FeedClient),
		runs:          make(chan runEvent, 16),
		cacheManager:  cm,
		lastRuns:      make(map[string]*RunSummary),
	}
}

// Run starts the broadcaster's main loop. This should be run as a goroutine.
func (b *FeedBroadcaster) Run() {
	ticker := time.NewTicker(config.DashboardFeedTick)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			if _, ok := b.tenantClients[client.TenantID]; !ok {
				b.tenantClients[client.TenantID] = make(map[*FeedClient]bool)
			}
			b.tenantClients[client.TenantID][client] = true
			log.Printf("Feed client registered for tenant: %s", client.TenantID)
			b.mu.Unlock()

		case client := <-b.unregister:
			b.mu.Lock()
			if clients, ok := b.tenantClients[client.TenantID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(b.tenantClients, client.TenantID)
					}
				}
			}
			log.Printf("Feed client unregistered for tenant: %s", client.TenantID)
			b.mu.Unlock()

		case event := <-b.runs:
			b.mu.Lock()
			summary := event.summary
			b.lastRuns[event.tenantID] = &summary
			b.mu.Unlock()
			b.broadcast(event.tenantID, b.buildPayload("run", event.tenantID, &summary))

		case <-ticker.C:
			b.broadcastHeartbeats()
		}
	}
}

// Register queues a client for registration.
func (b *FeedBroadcaster) Register(client *FeedClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *FeedBroadcaster) Unregister(client *FeedClient) {
	b.unregister <- client
}

// PublishRunSummary queues a completed run for broadcast to the tenant's clients.
// It never blocks the caller.
func (b *FeedBroadcaster) PublishRunSummary(tenantID string, summary RunSummary) {
	select {
	case b.runs <- runEvent{tenantID: tenantID, summary: summary}:
	default:
		log.Printf("Feed run queue full, dropping run summary for tenant: %s", tenantID)
	}
}

// broadcastHeartbeats sends the periodic heartbeat to every tenant with active clients.
func (b *FeedBroadcaster) broadcastHeartbeats() {
	b.mu.RLock()
	tenantIDs := make([]string, 0, len(b.tenantClients))
	for tenantID := range b.tenantClients {
		tenantIDs = append(tenantIDs, tenantID)
	}
	b.mu.RUnlock()

	for _, tenantID := range tenantIDs {
		b.mu.RLock()
		lastRun := b.lastRuns[tenantID]
		b.mu.RUnlock()

		b.broadcast(tenantID, b.buildPayload("heartbeat", tenantID, lastRun))
	}
}

func (b *FeedBroadcaster) buildPayload(payloadType, tenantID string, summary *RunSummary) FeedPayload {
	b.mu.RLock()
	clientCount := len(b.tenantClients[tenantID])
	b.mu.RUnlock()

	payload := FeedPayload{
		Type:        payloadType,
		RunSummary:  summary,
		ClientCount: clientCount,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if b.cacheManager != nil {
		payload.CacheSummary = b.cacheManager.GetSummary(tenantID)
	}
	return payload
}

func (b *FeedBroadcaster) broadcast(tenantID string, payload FeedPayload) {
	message, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling feed payload for tenant %s: %v", tenantID, err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if clients, ok := b.tenantClients[tenantID]; ok {
		for client := range clients {
			select {
			case client.Send <- message:
			default:
			}
		}
	}
}
