// internal/app/features/partners/handler.go
package partners

import (
	"context"
	"errors"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	partnerstore "github.com/almanarfoundation/manarhub/internal/app/store/partners"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin workflow over partner inquiries.
type Handler struct {
	Store *partnerstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(store *partnerstore.Store, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLogger, Log: log}
}

// HandleList serves GET /?status=….
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inquiries, err := h.Store.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.Log.Error("listing partner inquiries failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list inquiries")
		return
	}
	webjson.OK(w, map[string]any{"inquiries": inquiries})
}

// HandleGet serves GET /{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, err := h.Store.GetByID(ctx, id)
	if err == partnerstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "inquiry not found")
		return
	}
	if err != nil {
		h.Log.Error("fetching partner inquiry failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch inquiry")
		return
	}
	webjson.OK(w, p)
}

// HandleTransition serves POST /{id}/transition with {"status": "contacted"}.
//
// Only the status mutation happens server-side. When the new status is
// "contacted" the response includes a pre-filled mailto URL as a
// separate compose_intent field; the dashboard decides whether to open
// it. A failed or ignored email draft never leaves the status
// half-changed.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Store.Transition(ctx, id, req.Status)
	if err == partnerstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "inquiry not found")
		return
	}
	if errors.Is(err, partnerstore.ErrInvalidTransition) {
		webjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("partner transition failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to update inquiry")
		return
	}

	h.auditAction(ctx, r, id, map[string]string{"status": updated.Status})

	resp := map[string]any{"inquiry": updated}
	if updated.Status == models.PartnerStatusContacted {
		resp["compose_intent"] = partnerstore.ComposeIntent(updated)
	}
	webjson.OK(w, resp)
}

// HandleComposeIntent serves GET /{id}/compose-intent: the mailto URL
// on its own, for re-opening a draft without touching the status.
func (h *Handler) HandleComposeIntent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, err := h.Store.GetByID(ctx, id)
	if err == partnerstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "inquiry not found")
		return
	}
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch inquiry")
		return
	}

	webjson.OK(w, map[string]string{"compose_intent": partnerstore.ComposeIntent(p)})
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
		h.Log.Error("deleting partner inquiry failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete inquiry")
		return
	}
	if n == 0 {
		webjson.Error(w, http.StatusNotFound, "inquiry not found")
		return
	}
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

func (h *Handler) auditAction(ctx context.Context, r *http.Request, targetID primitive.ObjectID, details map[string]string) {
	var actorID *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			actorID = &oid
		}
	}
	h.Audit.AdminAction(ctx, r, audit.EventPartnerMoved, actorID, &targetID, details)
}
