package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns chat routes; all require auth
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/threads", h.OpenThread)
	r.Get("/threads", h.ListThreads)
	r.Get("/threads/{id}/messages", h.GetMessages)
	r.Post("/threads/{id}/messages", h.SendMessage)
	r.Post("/threads/{id}/read", h.MarkRead)
	r.Get("/unread", h.UnreadCount)
	r.Get("/ws", h.WebSocket)

	return r
}
