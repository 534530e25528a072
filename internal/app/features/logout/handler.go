// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// HandleLogout clears the session cookie. Logging out while already
// signed out is fine.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("sign out failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "unable to clear session")
		return
	}

	if ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			h.Audit.Logout(r.Context(), r, oid)
		}
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}

	webjson.OK(w, map[string]any{"signed_out": true})
}
