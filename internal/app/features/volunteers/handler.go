// internal/app/features/volunteers/handler.go
package volunteers

import (
	"context"
	"net/http"

	volunteerstore "github.com/almanarfoundation/manarhub/internal/app/store/volunteers"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin view over volunteer signups. Signups
// themselves arrive through the public API.
type Handler struct {
	Store *volunteerstore.Store
	Log   *zap.Logger
}

func NewHandler(store *volunteerstore.Store, log *zap.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

// HandleList serves GET /.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	signups, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("listing volunteers failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list volunteers")
		return
	}
	webjson.OK(w, map[string]any{"volunteers": signups})
}

// HandleDelete serves DELETE /{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	n, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.Log.Error("deleting volunteer signup failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete signup")
		return
	}
	if n == 0 {
		webjson.Error(w, http.StatusNotFound, "signup not found")
		return
	}
	webjson.OK(w, map[string]any{"deleted": true})
}
