// internal/app/features/leadership/handler.go
package leadership

import (
	"context"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	leaderstore "github.com/almanarfoundation/manarhub/internal/app/store/leaders"
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

// Handler serves the admin surface for the leadership page: CRUD plus
// manual ordering via move-up/move-down.
type Handler struct {
	Store *leaderstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(store *leaderstore.Store, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLogger, Log: log}
}

type leaderRequest struct {
	Name       string `json:"name" validate:"required,max=120" label:"Name"`
	Role       string `json:"role" validate:"required,max=120" label:"Role"`
	ImageURL   string `json:"image_url" validate:"max=2048" label:"Image URL"`
	Visibility string `json:"visibility" validate:"max=20" label:"Visibility"`
}

type leaderUpdateRequest struct {
	Name       string `json:"name" validate:"max=120" label:"Name"`
	Role       string `json:"role" validate:"max=120" label:"Role"`
	ImageURL   string `json:"image_url" validate:"max=2048" label:"Image URL"`
	Visibility string `json:"visibility" validate:"max=20" label:"Visibility"`
}

// HandleList serves GET /: members in display order.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Store.ListOrdered(ctx, false)
	if err != nil {
		h.Log.Error("listing leadership failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list leadership")
		return
	}
	webjson.OK(w, map[string]any{"members": members})
}

// HandleCreate serves POST /: appends the member to the end of the
// display order.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req leaderRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	created, err := h.Store.Create(ctx, models.LeadershipMember{
		Name:       req.Name,
		Role:       req.Role,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
	})
	if err == leaderstore.ErrNameRequired {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("creating leadership member failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to create leadership member")
		return
	}

	h.auditAction(ctx, r, audit.EventLeaderCreated, created.ID, nil)
	webjson.Created(w, created)
}

// HandleUpdate serves PUT /{id}. Order never changes here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req leaderUpdateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	err := h.Store.Update(ctx, id, models.LeadershipMember{
		Name:       req.Name,
		Role:       req.Role,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
	})
	if err == leaderstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "leadership member not found")
		return
	}
	if err != nil {
		h.Log.Error("updating leadership member failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to update leadership member")
		return
	}

	h.auditAction(ctx, r, audit.EventLeaderUpdated, id, nil)

	m, err := h.Store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch updated member")
		return
	}
	webjson.OK(w, m)
}

// HandleMoveUp serves POST /{id}/move-up; HandleMoveDown serves
// POST /{id}/move-down. Both respond with the full reordered list so
// the dashboard re-renders from the committed state rather than
// guessing.
func (h *Handler) HandleMoveUp(w http.ResponseWriter, r *http.Request) {
	h.handleMove(w, r, h.Store.MoveUp, "up")
}

func (h *Handler) HandleMoveDown(w http.ResponseWriter, r *http.Request) {
	h.handleMove(w, r, h.Store.MoveDown, "down")
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request, move func(context.Context, primitive.ObjectID) error, direction string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	err := move(ctx, id)
	switch err {
	case nil:
	case leaderstore.ErrNotFound:
		webjson.Error(w, http.StatusNotFound, "leadership member not found")
		return
	case leaderstore.ErrAtBoundary:
		webjson.Error(w, http.StatusConflict, err.Error())
		return
	default:
		h.Log.Error("reordering leadership failed", zap.Error(err), zap.String("direction", direction))
		webjson.Error(w, http.StatusInternalServerError, "failed to reorder leadership")
		return
	}

	h.auditAction(ctx, r, audit.EventLeaderReordered, id, map[string]string{"direction": direction})

	members, err := h.Store.ListOrdered(ctx, false)
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to list leadership")
		return
	}
	webjson.OK(w, map[string]any{"members": members})
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
		h.Log.Error("deleting leadership member failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete leadership member")
		return
	}
	if n == 0 {
		webjson.Error(w, http.StatusNotFound, "leadership member not found")
		return
	}

	h.auditAction(ctx, r, audit.EventLeaderDeleted, id, nil)
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

func (h *Handler) auditAction(ctx context.Context, r *http.Request, eventType string, targetID primitive.ObjectID, details map[string]string) {
	var actorID *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			actorID = &oid
		}
	}
	h.Audit.AdminAction(ctx, r, eventType, actorID, &targetID, details)
}
