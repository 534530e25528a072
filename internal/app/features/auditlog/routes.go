// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin"))

		pr.Get("/", h.HandleList)
	})

	return r
}
