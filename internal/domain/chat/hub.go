package chat

import (
	"context"
	"encoding/json"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventType for WebSocket messages
type EventType string

const (
	EventNewMessage EventType = "new_message"
	EventTyping     EventType = "typing"
	EventRead       EventType = "read"
)

const threadChannelPrefix = "chat:thread:"

var (
	wsConnectionsGauge   = expvar.NewInt("websocket_connections")
	wsEventsSentTotal    = expvar.NewInt("websocket_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("websocket_events_dropped_total")
)

// WSEvent represents a WebSocket event
type WSEvent struct {
	Type     EventType `json:"type"`
	ThreadID uuid.UUID `json:"thread_id,omitempty"`
	SenderID uuid.UUID `json:"sender_id,omitempty"`
	Message  *Message  `json:"message,omitempty"`
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans events out to local connections, with Redis Pub/Sub
// carrying them between server instances.
type Hub struct {
	connections map[uuid.UUID]map[*Connection]bool

	// thread subscriptions on this instance: threadID -> userIDs
	localThreads map[uuid.UUID]map[uuid.UUID]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a WebSocket hub. A nil redis client keeps the hub
// local to this instance.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections:  make(map[uuid.UUID]map[*Connection]bool),
		localThreads: make(map[uuid.UUID]map[uuid.UUID]bool),
		redis:        redisClient,
		register:     make(chan *Connection),
		unregister:   make(chan *Connection),
		ctx:          ctx,
		cancel:       cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, threadChannelPrefix+"*")
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.UserID] == nil {
				h.connections[conn.UserID] = make(map[*Connection]bool)
			}
			h.connections[conn.UserID][conn] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User connected to WebSocket")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.UserID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
					wsConnectionsGauge.Add(-1)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.UserID)
					for threadID, users := range h.localThreads {
						delete(users, conn.UserID)
						if len(users) == 0 {
							delete(h.localThreads, threadID)
						}
					}
				}
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User disconnected from WebSocket")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			if !strings.HasPrefix(msg.Channel, threadChannelPrefix) {
				continue
			}

			threadID, err := uuid.Parse(msg.Channel[len(threadChannelPrefix):])
			if err != nil {
				continue
			}

			var event WSEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			h.broadcastLocal(threadID, &event)
		}
	}
}

func (h *Hub) broadcastLocal(threadID uuid.UUID, event *WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users, ok := h.localThreads[threadID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	for userID := range users {
		for conn := range h.connections[userID] {
			select {
			case conn.Send <- data:
				wsEventsSentTotal.Add(1)
			default:
				wsEventsDroppedTotal.Add(1)
				log.Warn().Str("user_id", userID.String()).Msg("WebSocket send buffer full")
			}
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// SubscribeToThread adds the user's local subscription
func (h *Hub) SubscribeToThread(threadID, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.localThreads[threadID] == nil {
		h.localThreads[threadID] = make(map[uuid.UUID]bool)
	}
	h.localThreads[threadID][userID] = true
}

// BroadcastToThread sends an event to every member, on any instance
func (h *Hub) BroadcastToThread(threadID uuid.UUID, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal WebSocket event")
		return
	}

	if h.redis == nil {
		h.broadcastLocal(threadID, event)
		return
	}

	channel := threadChannelPrefix + threadID.String()
	ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
	defer cancel()

	if err := h.redis.Publish(ctx, channel, data).Err(); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("Redis publish failed")
		h.broadcastLocal(threadID, event)
	}
}

// ConnectionCount returns the number of local connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, conns := range h.connections {
		total += len(conns)
	}
	return total
}

// Shutdown stops the hub and its Redis subscription
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
