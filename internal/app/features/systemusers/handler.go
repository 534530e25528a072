// internal/app/features/systemusers/handler.go
package systemusers

import (
	"context"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	userstore "github.com/almanarfoundation/manarhub/internal/app/store/users"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/inputval"
	"github.com/almanarfoundation/manarhub/internal/app/system/status"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler manages dashboard staff accounts. Admin role only; editors
// cannot reach these routes.
type Handler struct {
	Users *userstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Users: users, Audit: auditLogger, Log: log}
}

type createUserRequest struct {
	FullName   string `json:"full_name" validate:"required,max=120" label:"Full name"`
	Email      string `json:"email" validate:"required,email,max=254" label:"Email"`
	Role       string `json:"role" validate:"required,max=20" label:"Role"`
	AuthMethod string `json:"auth_method" validate:"required,max=20" label:"Auth method"`
	Password   string `json:"password" validate:"max=200" label:"Password"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,max=20" label:"Status"`
}

type setPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=200" label:"Password"`
}

// HandleList serves GET /.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("listing users failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	webjson.OK(w, map[string]any{"users": users})
}

// HandleCreate serves POST /. Password accounts get their initial
// password here; Google accounts carry no password at all.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createUserRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	u := models.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       req.Role,
		AuthMethod: req.AuthMethod,
		Status:     status.Active,
	}

	if req.AuthMethod == "password" {
		if len(req.Password) < 8 {
			webjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			h.Log.Error("hashing password failed", zap.Error(err))
			webjson.Error(w, http.StatusInternalServerError, "failed to create user")
			return
		}
		u.PasswordHash = string(hash)
	}

	created, err := h.Users.Create(ctx, u)
	if err == userstore.ErrDuplicateEmail {
		webjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Warn("creating user rejected", zap.Error(err))
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.auditAction(ctx, r, audit.EventUserCreated, created.ID)
	webjson.Created(w, created)
}

// HandleSetStatus serves PUT /{id}/status. Disabling an account locks
// it out on the next request; the session cookie alone is not enough to
// keep editing.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	// An admin cannot disable their own account.
	if u, okUser := auth.CurrentUser(r); okUser && u.ID == id.Hex() && req.Status == status.Disabled {
		webjson.Error(w, http.StatusBadRequest, "you cannot disable your own account")
		return
	}

	if err := h.Users.SetStatus(ctx, id, req.Status); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	eventType := audit.EventUserUpdated
	if req.Status == status.Disabled {
		eventType = audit.EventUserDisabled
	}
	h.auditAction(ctx, r, eventType, id)
	webjson.OK(w, map[string]any{"status": req.Status})
}

// HandleSetPassword serves PUT /{id}/password for password accounts.
func (h *Handler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req setPasswordRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	if err := h.Users.SetPassword(ctx, id, req.Password); err != nil {
		h.Log.Error("setting password failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to set password")
		return
	}

	h.auditAction(ctx, r, audit.EventUserUpdated, id)
	webjson.OK(w, map[string]any{"updated": true})
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
