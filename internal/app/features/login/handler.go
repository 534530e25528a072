// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	userstore "github.com/almanarfoundation/manarhub/internal/app/store/users"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/ratelimit"
	"github.com/almanarfoundation/manarhub/internal/app/system/status"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler signs dashboard staff in and out. The dashboard is a SPA, so
// everything here speaks JSON; Google sign-in lives in the authgoogle
// feature.
type Handler struct {
	Users   *userstore.Store
	Audit   *auditlog.Logger
	Limiter *ratelimit.LoginLimiter
	Log     *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin serves POST /login for password accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		webjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if allowed, reason := h.Limiter.Check(r, email); !allowed {
		webjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case err == mongo.ErrNoDocuments:
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserNotFound, "user not found", email)
		webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	case err != nil:
		h.Log.Error("user lookup failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "a server error occurred")
		return
	}

	if u.Status == status.Disabled {
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserDisabled, "account disabled", email)
		webjson.Error(w, http.StatusForbidden, "this account is disabled")
		return
	}

	if u.AuthMethod != "password" {
		webjson.Error(w, http.StatusBadRequest, "this account signs in with Google")
		return
	}

	if !h.Users.VerifyPassword(u, req.Password) {
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedWrongPassword, "wrong password", email)
		webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	sessUser := auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
	if err := auth.SignIn(w, r, sessUser); err != nil {
		h.Log.Error("sign in failed", zap.Error(err), zap.String("email", u.Email))
		webjson.Error(w, http.StatusInternalServerError, "unable to create session")
		return
	}

	h.Limiter.ResetEmail(u.Email)
	h.Audit.LoginSuccess(ctx, r, u.ID, u.AuthMethod, u.Email)
	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))

	webjson.OK(w, map[string]any{"user": userResponse{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}})
}

// HandleMe serves GET /me: the signed-in user, or 401.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	webjson.OK(w, map[string]any{"user": userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}})
}
