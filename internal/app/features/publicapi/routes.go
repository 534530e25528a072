// internal/app/features/publicapi/routes.go
package publicapi

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/content/{kind}", h.HandleContentList)
	r.Get("/content/{kind}/{id}", h.HandleContentGet)
	r.Get("/groups/{kind}", h.HandleGroupList)
	r.Get("/team", h.HandleTeam)
	r.Get("/leadership", h.HandleLeadership)
	r.Get("/programs", h.HandlePrograms)
	r.Post("/volunteers", h.HandleVolunteerSignup)
	r.Post("/partners", h.HandlePartnerInquiry)

	return r
}
