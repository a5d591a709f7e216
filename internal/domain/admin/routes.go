package admin

import "github.com/go-chi/chi/v5"

// Routes wires the admin panel under its own auth scheme
func (h *Handler) Routes(jwtSvc *JWTService, adminSvc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSvc, adminSvc))

		r.Get("/me", h.Me)

		r.Group(func(r chi.Router) {
			r.Use(RequirePermission(PermViewSpaces))
			r.Get("/spaces/pending", h.PendingSpaces)
		})
		r.Group(func(r chi.Router) {
			r.Use(RequirePermission(PermModerateSpaces))
			r.Post("/spaces/{id}/approve", h.ApproveSpace)
			r.Post("/spaces/{id}/reject", h.RejectSpace)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequirePermission(PermViewUsers))
			r.Get("/users", h.Users)
		})
		r.Group(func(r chi.Router) {
			r.Use(RequirePermission(PermBlockUsers))
			r.Post("/users/{id}/block", h.BlockUser)
			r.Post("/users/{id}/unblock", h.UnblockUser)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequirePermission(PermViewAnalytics))
			r.Get("/stats", h.Stats)
		})
	})

	return r
}
