// internal/app/features/partners/routes.go
package partners

import (
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "editor"))

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
		pr.Post("/{id}/transition", h.HandleTransition)
		pr.Get("/{id}/compose-intent", h.HandleComposeIntent)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
