// internal/app/features/team/handler.go
package team

import (
	"context"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	teamstore "github.com/almanarfoundation/manarhub/internal/app/store/team"
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

// Handler serves the admin CRUD surface for general team members.
type Handler struct {
	Store *teamstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(store *teamstore.Store, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLogger, Log: log}
}

type memberRequest struct {
	Name       string   `json:"name" validate:"required,max=120" label:"Name"`
	Roles      []string `json:"roles" label:"Roles"`
	ImageURL   string   `json:"image_url" validate:"max=2048" label:"Image URL"`
	Visibility string   `json:"visibility" validate:"max=20" label:"Visibility"`
}

type memberUpdateRequest struct {
	Name       string   `json:"name" validate:"max=120" label:"Name"`
	Roles      []string `json:"roles" label:"Roles"`
	ImageURL   string   `json:"image_url" validate:"max=2048" label:"Image URL"`
	Visibility string   `json:"visibility" validate:"max=20" label:"Visibility"`
}

// HandleList serves GET /.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Store.List(ctx, false)
	if err != nil {
		h.Log.Error("listing team failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list team members")
		return
	}
	webjson.OK(w, map[string]any{"members": members})
}

// HandleCreate serves POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req memberRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	created, err := h.Store.Create(ctx, models.TeamMember{
		Name:       req.Name,
		Roles:      req.Roles,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
	})
	if err == teamstore.ErrNameRequired {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("creating team member failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to create team member")
		return
	}

	h.auditAction(ctx, r, audit.EventTeamCreated, created.ID)
	webjson.Created(w, created)
}

// HandleUpdate serves PUT /{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req memberUpdateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	err := h.Store.Update(ctx, id, models.TeamMember{
		Name:       req.Name,
		Roles:      req.Roles,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
	})
	if err == teamstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "team member not found")
		return
	}
	if err != nil {
		h.Log.Error("updating team member failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to update team member")
		return
	}

	h.auditAction(ctx, r, audit.EventTeamUpdated, id)

	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch updated member")
		return
	}
	webjson.OK(w, m)
}

// HandleVisibility serves PUT /{id}/visibility with {"visibility": "hidden"}.
func (h *Handler) HandleVisibility(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Visibility string `json:"visibility"`
	}
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.Store.SetVisibility(ctx, id, req.Visibility)
	if err == teamstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "team member not found")
		return
	}
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.auditAction(ctx, r, audit.EventTeamUpdated, id)
	webjson.OK(w, map[string]any{"visibility": req.Visibility})
}

// HandleDelete serves DELETE /{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	n, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.Log.Error("deleting team member failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete team member")
		return
	}
	if n == 0 {
		webjson.Error(w, http.StatusNotFound, "team member not found")
		return
	}

	h.auditAction(ctx, r, audit.EventTeamDeleted, id)
	webjson.OK(w, map[string]any{"deleted": true})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) auditAction(ctx context.Context, r *http.Request, eventType string, targetID primitive.ObjectID) {
	var actorID *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			actorID = &oid
		}
	}
	h.Audit.AdminAction(ctx, r, eventType, actorID, &targetID, nil)
}
