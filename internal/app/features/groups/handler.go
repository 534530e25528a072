// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"net/http"
	"strconv"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	groupstore "github.com/almanarfoundation/manarhub/internal/app/store/groups"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/inputval"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin CRUD surface for one grouping entity (audio
// series, ebook collections, video playlists, podcast shows, gallery
// albums). Deleting a group cascades to its children.
type Handler struct {
	Store *groupstore.Store
	Kind  string // e.g. "audio_series", used in audit details
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler builds a Handler for one grouping entity.
func NewHandler(store *groupstore.Store, kind string, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Store: store, Kind: kind, Audit: auditLogger, Log: log}
}

type groupRequest struct {
	Title    string `json:"title" validate:"required,max=200" label:"Title"`
	Category string `json:"category" validate:"required,category" label:"Category"`
	CoverURL string `json:"cover_url" validate:"max=2048" label:"Cover URL"`
}

type groupUpdateRequest struct {
	Title    string `json:"title" validate:"max=200" label:"Title"`
	Category string `json:"category" label:"Category"`
	CoverURL string `json:"cover_url" validate:"max=2048" label:"Cover URL"`
}

// HandleList serves GET /?category=….
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := h.Store.List(ctx, r.URL.Query().Get("category"))
	if err != nil {
		h.Log.Error("listing groups failed", zap.Error(err), zap.String("kind", h.Kind))
		webjson.Error(w, http.StatusInternalServerError, "failed to list groups")
		return
	}

	// Child counts are derived, never stored, so they can't drift.
	out := make([]models.GroupWithCount, 0, len(groups))
	for _, g := range groups {
		n, err := h.Store.ChildCount(ctx, g.ID)
		if err != nil {
			h.Log.Error("counting children failed", zap.Error(err), zap.String("group_id", g.ID.Hex()))
			webjson.Error(w, http.StatusInternalServerError, "failed to list groups")
			return
		}
		out = append(out, models.GroupWithCount{Group: g, ChildCount: n})
	}

	webjson.OK(w, map[string]any{"groups": out})
}

// HandleGet serves GET /{id}, including the titles of its children.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	g, err := h.Store.GetByID(ctx, id)
	if err == groupstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err != nil {
		h.Log.Error("fetching group failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch group")
		return
	}

	titles, err := h.Store.ChildTitles(ctx, id)
	if err != nil {
		h.Log.Error("fetching child titles failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch group")
		return
	}

	webjson.OK(w, map[string]any{"group": g, "child_titles": titles})
}

// HandleCreate serves POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req groupRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	created, err := h.Store.Create(ctx, models.Group{
		Title:    req.Title,
		Category: req.Category,
		CoverURL: req.CoverURL,
	})
	switch err {
	case nil:
	case groupstore.ErrTitleRequired, groupstore.ErrInvalidCategory:
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.Log.Error("creating group failed", zap.Error(err), zap.String("kind", h.Kind))
		webjson.Error(w, http.StatusInternalServerError, "failed to create group")
		return
	}

	h.auditAction(ctx, r, audit.EventGroupCreated, created.ID, nil)
	webjson.Created(w, created)
}

// HandleUpdate serves PUT /{id}. Renames refresh the denormalized
// group title on every child.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req groupUpdateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	err := h.Store.Update(ctx, id, models.Group{
		Title:    req.Title,
		Category: req.Category,
		CoverURL: req.CoverURL,
	})
	switch err {
	case nil:
	case groupstore.ErrNotFound:
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	case groupstore.ErrInvalidCategory:
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.Log.Error("updating group failed", zap.Error(err), zap.String("kind", h.Kind))
		webjson.Error(w, http.StatusInternalServerError, "failed to update group")
		return
	}

	h.auditAction(ctx, r, audit.EventGroupUpdated, id, nil)

	g, err := h.Store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch updated group")
		return
	}
	webjson.OK(w, g)
}

// HandleDelete serves DELETE /{id}: removes the group and all of its
// children in one transaction.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	removed, err := h.Store.CascadeDelete(ctx, id)
	if err == groupstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if err != nil {
		h.Log.Error("cascade delete failed", zap.Error(err), zap.String("kind", h.Kind))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete group")
		return
	}

	h.auditAction(ctx, r, audit.EventGroupCascaded, id, map[string]string{
		"children_deleted": itoa64(removed),
	})
	webjson.OK(w, map[string]any{"deleted": true, "children_deleted": removed})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) auditAction(ctx context.Context, r *http.Request, eventType string, targetID primitive.ObjectID, extra map[string]string) {
	details := map[string]string{"kind": h.Kind}
	for k, v := range extra {
		details[k] = v
	}
	var actorID *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			actorID = &oid
		}
	}
	h.Audit.AdminAction(ctx, r, eventType, actorID, &targetID, details)
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
