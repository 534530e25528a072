package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userstore "github.com/almanarfoundation/manarhub/internal/app/store/users"
	"github.com/almanarfoundation/manarhub/internal/app/system/ratelimit"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func seedPasswordUser(t *testing.T, db *mongo.Database, email, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	_, err = userstore.New(db).Create(ctx, models.User{
		FullName:     "Aisha Bello",
		Email:        email,
		Role:         "editor",
		AuthMethod:   "password",
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func loginHandler(db *mongo.Database) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Audit:   nil,
		Limiter: ratelimit.NewLoginLimiter(),
		Log:     zap.NewNop(),
	}
}

func postLogin(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)
	return w
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedPasswordUser(t, db, "aisha@almanar.org", "correct-horse")

	h := loginHandler(db)

	w := postLogin(h, `{"email":"aisha@almanar.org","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", w.Code)
	}
}

func TestHandleLogin_UnknownUserGetsSameMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedPasswordUser(t, db, "aisha@almanar.org", "correct-horse")

	h := loginHandler(db)

	unknown := postLogin(h, `{"email":"nobody@almanar.org","password":"whatever"}`)
	wrong := postLogin(h, `{"email":"aisha@almanar.org","password":"wrong"}`)

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrong.Code)
	}

	var a, b map[string]string
	if err := json.Unmarshal(unknown.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal(wrong.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a["error"] != b["error"] {
		t.Errorf("unknown-user and wrong-password responses differ: %q vs %q", a["error"], b["error"])
	}
}

func TestHandleLogin_RateLimitsRepeatedAttempts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedPasswordUser(t, db, "aisha@almanar.org", "correct-horse")

	h := loginHandler(db)

	var lastCode int
	for i := 0; i < 12; i++ {
		w := postLogin(h, `{"email":"aisha@almanar.org","password":"wrong"}`)
		lastCode = w.Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 after repeated failures, got %d", lastCode)
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	h := &Handler{Limiter: ratelimit.NewLoginLimiter(), Log: zap.NewNop()}

	w := postLogin(h, `{"email":"","password":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
