// internal/app/features/programs/handler.go
package programs

import (
	"context"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	programstore "github.com/almanarfoundation/manarhub/internal/app/store/programs"
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

// Handler serves the admin CRUD surface for foundation programs.
type Handler struct {
	Store *programstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(store *programstore.Store, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLogger, Log: log}
}

type programRequest struct {
	Title       string `json:"title" validate:"required,max=200" label:"Title"`
	Description string `json:"description" validate:"max=5000" label:"Description"`
	Category    string `json:"category" validate:"max=20" label:"Category"`
	CoverURL    string `json:"cover_url" validate:"max=2048" label:"Cover URL"`
	Status      string `json:"status" validate:"max=20" label:"Status"`
}

type programUpdateRequest struct {
	Title       string `json:"title" validate:"max=200" label:"Title"`
	Description string `json:"description" validate:"max=5000" label:"Description"`
	Category    string `json:"category" validate:"max=20" label:"Category"`
	CoverURL    string `json:"cover_url" validate:"max=2048" label:"Cover URL"`
	Status      string `json:"status" validate:"max=20" label:"Status"`
}

// HandleList serves GET /.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	programs, err := h.Store.List(ctx, false)
	if err != nil {
		h.Log.Error("listing programs failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list programs")
		return
	}
	webjson.OK(w, map[string]any{"programs": programs})
}

// HandleCreate serves POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req programRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	created, err := h.Store.Create(ctx, models.Program{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
		Status:      req.Status,
	})
	if err == programstore.ErrTitleRequired {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("creating program failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to create program")
		return
	}

	h.auditAction(ctx, r, audit.EventProgramCreated, created.ID)
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

	var req programUpdateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	err := h.Store.Update(ctx, id, models.Program{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
		Status:      req.Status,
	})
	if err == programstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "program not found")
		return
	}
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.auditAction(ctx, r, audit.EventProgramUpdated, id)

	p, err := h.Store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch updated program")
		return
	}
	webjson.OK(w, p)
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
		h.Log.Error("deleting program failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete program")
		return
	}
	if n == 0 {
		webjson.Error(w, http.StatusNotFound, "program not found")
		return
	}

	h.auditAction(ctx, r, audit.EventProgramDeleted, id)
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
