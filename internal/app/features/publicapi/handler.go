// internal/app/features/publicapi/handler.go
package publicapi

import (
	"context"
	"net/http"

	contentstore "github.com/almanarfoundation/manarhub/internal/app/store/content"
	groupstore "github.com/almanarfoundation/manarhub/internal/app/store/groups"
	leaderstore "github.com/almanarfoundation/manarhub/internal/app/store/leaders"
	partnerstore "github.com/almanarfoundation/manarhub/internal/app/store/partners"
	programstore "github.com/almanarfoundation/manarhub/internal/app/store/programs"
	teamstore "github.com/almanarfoundation/manarhub/internal/app/store/team"
	volunteerstore "github.com/almanarfoundation/manarhub/internal/app/store/volunteers"
	"github.com/almanarfoundation/manarhub/internal/app/system/inputval"
	"github.com/almanarfoundation/manarhub/internal/app/system/paging"
	"github.com/almanarfoundation/manarhub/internal/app/system/status"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the unauthenticated public site API: published
// content, visible team and leadership, published programs, and the
// volunteer/partner submission forms.
type Handler struct {
	Content    map[string]*contentstore.Store // keyed by URL segment: "audios", "videos", …
	Groups     map[string]*groupstore.Store   // keyed by URL segment: "series", "playlists", …
	Team       *teamstore.Store
	Leadership *leaderstore.Store
	Programs   *programstore.Store
	Volunteers *volunteerstore.Store
	Partners   *partnerstore.Store
	Log        *zap.Logger
}

// HandleContentList serves GET /content/{kind}?category=…&group_id=…&page=….
// Only published items are returned.
func (h *Handler) HandleContentList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store, ok := h.Content[chi.URLParam(r, "kind")]
	if !ok {
		webjson.Error(w, http.StatusNotFound, "unknown content kind")
		return
	}

	q := r.URL.Query()
	filter := contentstore.ListFilter{
		Category: q.Get("category"),
		Status:   status.Published,
		Search:   q.Get("q"),
	}
	if gid := q.Get("group_id"); gid != "" {
		oid, err := primitive.ObjectIDFromHex(gid)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "invalid group_id")
			return
		}
		filter.GroupID = &oid
	}

	page := paging.ParsePage(q.Get("page"))
	total, err := store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("public content count failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list content")
		return
	}
	items, err := store.List(ctx, filter, paging.FindOptions(page))
	if err != nil {
		h.Log.Error("public content list failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list content")
		return
	}

	webjson.OK(w, map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"pages": paging.PageCount(total),
	})
}

// HandleContentGet serves GET /content/{kind}/{id}. Draft items are not
// visible publicly.
func (h *Handler) HandleContentGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store, ok := h.Content[chi.URLParam(r, "kind")]
	if !ok {
		webjson.Error(w, http.StatusNotFound, "unknown content kind")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := store.GetByID(ctx, id)
	if err == contentstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.Log.Error("public content get failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch content")
		return
	}
	if item.Status != status.Published {
		webjson.Error(w, http.StatusNotFound, "not found")
		return
	}
	webjson.OK(w, item)
}

// HandleGroupList serves GET /groups/{kind}?category=….
func (h *Handler) HandleGroupList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store, ok := h.Groups[chi.URLParam(r, "kind")]
	if !ok {
		webjson.Error(w, http.StatusNotFound, "unknown group kind")
		return
	}

	groups, err := store.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		h.Log.Error("public group list failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list groups")
		return
	}
	webjson.OK(w, map[string]any{"groups": groups})
}

// HandleTeam serves GET /team: visible members only.
func (h *Handler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Team.List(ctx, true)
	if err != nil {
		h.Log.Error("public team list failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list team")
		return
	}
	webjson.OK(w, map[string]any{"members": members})
}

// HandleLeadership serves GET /leadership: visible members in display
// order.
func (h *Handler) HandleLeadership(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Leadership.ListOrdered(ctx, true)
	if err != nil {
		h.Log.Error("public leadership list failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list leadership")
		return
	}
	webjson.OK(w, map[string]any{"members": members})
}

// HandlePrograms serves GET /programs: published programs only.
func (h *Handler) HandlePrograms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	programs, err := h.Programs.List(ctx, true)
	if err != nil {
		h.Log.Error("public program list failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list programs")
		return
	}
	webjson.OK(w, map[string]any{"programs": programs})
}

type volunteerSignupRequest struct {
	Name      string   `json:"name" validate:"required,max=120" label:"Name"`
	Email     string   `json:"email" validate:"required,email,max=254" label:"Email"`
	Phone     string   `json:"phone" validate:"max=30" label:"Phone"`
	Interests []string `json:"interests" label:"Interests"`
}

// HandleVolunteerSignup serves POST /volunteers.
func (h *Handler) HandleVolunteerSignup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req volunteerSignupRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	created, err := h.Volunteers.Create(ctx, models.Volunteer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Interests: req.Interests,
	})
	if err != nil {
		h.Log.Error("volunteer signup failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to submit signup")
		return
	}
	webjson.Created(w, map[string]any{"id": created.ID.Hex()})
}

type partnerInquiryRequest struct {
	Organization  string `json:"organization" validate:"required,max=200" label:"Organization"`
	ContactPerson string `json:"contact_person" validate:"required,max=120" label:"Contact person"`
	Email         string `json:"email" validate:"required,email,max=254" label:"Email"`
	Message       string `json:"message" validate:"max=5000" label:"Message"`
}

// HandlePartnerInquiry serves POST /partners.
func (h *Handler) HandlePartnerInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req partnerInquiryRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	created, err := h.Partners.Create(ctx, models.PartnerInquiry{
		Organization:  req.Organization,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Message:       req.Message,
	})
	if err != nil {
		h.Log.Error("partner inquiry failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to submit inquiry")
		return
	}
	webjson.Created(w, map[string]any{"id": created.ID.Hex()})
}
