package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/response"
	"github.com/roomly/roomly-api/internal/pkg/validator"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Handler handles chat HTTP requests
type Handler struct {
	service     *Service
	hub         *Hub
	rateLimiter *RateLimiter
	upgrader    websocket.Upgrader
}

// RateLimiter throttles message sends per user
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a redis-backed rate limiter
func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  30,
		window: time.Minute,
	}
}

// Allow checks if user can send a message. Fails open without redis.
func (rl *RateLimiter) Allow(userID uuid.UUID) bool {
	if rl.redis == nil {
		return true
	}

	key := fmt.Sprintf("ratelimit:chat:%s", userID)
	ctx := context.Background()

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		rl.redis.Expire(ctx, key, rl.window)
	}

	return count <= int64(rl.limit)
}

// NewHandler creates chat handler
func NewHandler(service *Service, hub *Hub, redisClient *redis.Client, allowedOrigins []string) *Handler {
	return &Handler{
		service:     service,
		hub:         hub,
		rateLimiter: NewRateLimiter(redisClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// OpenThread handles POST /chat/threads
func (h *Handler) OpenThread(w http.ResponseWriter, r *http.Request) {
	var req CreateThreadRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	thread, err := h.service.OpenThread(r.Context(), userID, req.CompanyID)
	if err != nil {
		switch err {
		case ErrSelfThread:
			response.BadRequest(w, "Cannot start a chat with yourself")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, thread)
}

// ListThreads handles GET /chat/threads
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	threads, err := h.service.ListThreads(r.Context(), actorID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, threads)
}

// GetMessages handles GET /chat/threads/{id}/messages
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	threadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid thread ID")
		return
	}

	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	actorID := middleware.GetUserID(r.Context())
	messages, err := h.service.GetMessages(r.Context(), actorID, threadID, limit, offset)
	if err != nil {
		h.writeThreadError(w, err)
		return
	}

	response.OK(w, messages)
}

// SendMessage handles POST /chat/threads/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	threadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid thread ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())

	if !h.rateLimiter.Allow(actorID) {
		response.Error(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many messages, please slow down")
		return
	}

	var req SendMessageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	msg, err := h.service.SendMessage(r.Context(), actorID, threadID, req.Body)
	if err != nil {
		if err == ErrEmptyMessage {
			response.BadRequest(w, "Message body is empty")
			return
		}
		h.writeThreadError(w, err)
		return
	}

	response.Created(w, msg)
}

// MarkRead handles POST /chat/threads/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	threadID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid thread ID")
		return
	}

	actorID := middleware.GetUserID(r.Context())
	if err := h.service.MarkRead(r.Context(), actorID, threadID); err != nil {
		h.writeThreadError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// UnreadCount handles GET /chat/unread
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	count, _ := h.service.UnreadCount(r.Context(), actorID)
	response.OK(w, map[string]int{"unread_count": count})
}

func (h *Handler) writeThreadError(w http.ResponseWriter, err error) {
	switch err {
	case ErrThreadNotFound:
		response.NotFound(w, "Thread not found")
	case ErrNotMember:
		response.Forbidden(w, "You are not a member of this thread")
	default:
		response.InternalError(w)
	}
}

// WebSocket handles WS /chat/ws
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Connection{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.hub.Register(client)

	threads, _ := h.service.ListThreads(r.Context(), userID)
	for _, t := range threads {
		h.hub.SubscribeToThread(t.ID, userID)
	}

	go h.wsReader(client)
	go h.wsWriter(client)
}

func (h *Handler) wsReader(client *Connection) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", client.UserID.String()).Msg("WebSocket read error")
			}
			break
		}

		if !h.rateLimiter.Allow(client.UserID) {
			continue
		}

		var event struct {
			Type     string    `json:"type"`
			ThreadID uuid.UUID `json:"thread_id"`
		}
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}

		switch event.Type {
		case "typing":
			h.hub.BroadcastToThread(event.ThreadID, &WSEvent{
				Type:     EventTyping,
				ThreadID: event.ThreadID,
				SenderID: client.UserID,
			})
		case "read":
			_ = h.service.MarkRead(context.Background(), client.UserID, event.ThreadID)
		}
	}
}

func (h *Handler) wsWriter(client *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
