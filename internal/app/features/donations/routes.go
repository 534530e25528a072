// internal/app/features/donations/routes.go
package donations

import (
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// PublicRoutes exposes the initiation and verification endpoints the
// donation page calls; no session is required.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/initiate", h.HandleInitiate)
	r.Post("/verify", h.HandleVerify)
	return r
}

// AdminRoutes exposes the donations list to signed-in staff.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin"))

		pr.Get("/", h.HandleList)
	})

	return r
}
