// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "editor"))

		pr.Post("/{uploadID}", h.HandleUpload)
		pr.Get("/{uploadID}/progress", h.HandleProgress)
		pr.Delete("/{uploadID}/progress", h.HandleForget)
	})

	return r
}
