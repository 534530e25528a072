package systemusers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userstore "github.com/almanarfoundation/manarhub/internal/app/store/users"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.uber.org/zap"
)

func createEditor(t *testing.T, db *userstore.Store) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := db.Create(ctx, models.User{
		FullName:     "Aisha Bello",
		Email:        "aisha@almanar.org",
		Role:         "editor",
		AuthMethod:   "password",
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarea",
	})
	if err != nil {
		t.Fatalf("create editor: %v", err)
	}
	return u
}

func TestHandleCreate_RejectsDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)

	users := userstore.New(db)
	createEditor(t, users)

	h := NewHandler(users, nil, zap.NewNop())

	body := `{"full_name":"Other","email":"AISHA@almanar.org","role":"editor","auth_method":"password","password":"longenough"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())

	w := httptest.NewRecorder()
	h.HandleCreate(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for a case-folded duplicate email, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleSetStatus_BlocksSelfDisable(t *testing.T) {
	db := testutil.SetupTestDB(t)

	users := userstore.New(db)
	u := createEditor(t, users)

	h := NewHandler(users, nil, zap.NewNop())

	self := testutil.TestUser{ID: u.ID.Hex(), Name: u.FullName, Email: u.Email, Role: "admin"}
	req := httptest.NewRequest(http.MethodPut, "/"+u.ID.Hex()+"/status", strings.NewReader(`{"status":"disabled"}`))
	req = testutil.WithUser(req, self)
	req = testutil.WithChiURLParam(req, "id", u.ID.Hex())

	w := httptest.NewRecorder()
	h.HandleSetStatus(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for self-disable, got %d", w.Code)
	}
}

func TestHandleSetStatus_DisablesOtherAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	u := createEditor(t, users)

	h := NewHandler(users, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/"+u.ID.Hex()+"/status", strings.NewReader(`{"status":"disabled"}`))
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", u.ID.Hex())

	w := httptest.NewRecorder()
	h.HandleSetStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "disabled" {
		t.Errorf("expected status disabled, got %q", got.Status)
	}
}

func TestHandleCreate_PasswordTooShort(t *testing.T) {
	db := testutil.SetupTestDB(t)

	h := NewHandler(userstore.New(db), nil, zap.NewNop())

	body := `{"full_name":"Other","email":"new@almanar.org","role":"editor","auth_method":"password","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.AdminUser())

	w := httptest.NewRecorder()
	h.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a short password, got %d", w.Code)
	}
}
