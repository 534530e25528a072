// internal/app/features/leadership/routes.go
package leadership

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
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Post("/{id}/move-up", h.HandleMoveUp)
		pr.Post("/{id}/move-down", h.HandleMoveDown)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
