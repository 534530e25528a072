package donations

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	donationstore "github.com/almanarfoundation/manarhub/internal/app/store/donations"
	"github.com/almanarfoundation/manarhub/internal/app/system/indexes"
	"github.com/almanarfoundation/manarhub/internal/app/system/paystack"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.uber.org/zap"
)

// fakeGateway serves Paystack's verify endpoint for a fixed set of
// transactions keyed by reference.
func fakeGateway(t *testing.T, transactions map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")
		status, ok := transactions[ref]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"status":true,"message":"Verification successful","data":{
			"reference":%q,"status":%q,"amount":500000,"currency":"NGN",
			"channel":"card","customer":{"email":"donor@example.com"}}}`, ref, status)
	}))
}

func verifyRequestBody(reference string) *strings.Reader {
	return strings.NewReader(fmt.Sprintf(`{"reference":%q}`, reference))
}

func TestHandleVerify_SettlesPendingDonation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gw := fakeGateway(t, map[string]string{"DN-100": "success"})
	defer gw.Close()

	store := donationstore.New(db)
	if _, err := store.Create(ctx, models.Donation{Reference: "DN-100", Amount: 500000, Currency: "NGN"}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	h := NewHandler(store, paystack.New("sk_test", gw.URL), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-100")))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp verifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success=true, got %+v", resp)
	}

	d, err := store.GetByReference(ctx, "DN-100")
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if d.Status != models.DonationStatusSuccess {
		t.Errorf("expected status success, got %q", d.Status)
	}
	if d.PaidAt == nil {
		t.Error("expected paid_at to be set")
	}
}

func TestHandleVerify_RepeatVerificationIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gw := fakeGateway(t, map[string]string{"DN-200": "success"})
	defer gw.Close()

	store := donationstore.New(db)
	if _, err := store.Create(ctx, models.Donation{Reference: "DN-200", Amount: 500000, Currency: "NGN"}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	h := NewHandler(store, paystack.New("sk_test", gw.URL), nil, zap.NewNop())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-200")))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200, got %d", i+1, w.Code)
		}
	}

	first, err := store.GetByReference(ctx, "DN-200")
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	firstPaidAt := *first.PaidAt

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-200")))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat, got %d", w.Code)
	}

	after, err := store.GetByReference(ctx, "DN-200")
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if !after.PaidAt.Equal(firstPaidAt) {
		t.Error("repeat verification rewrote the stored settlement")
	}
}

func TestHandleVerify_FailedPaymentStaysPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gw := fakeGateway(t, map[string]string{"DN-300": "abandoned"})
	defer gw.Close()

	store := donationstore.New(db)
	if _, err := store.Create(ctx, models.Donation{Reference: "DN-300", Amount: 500000, Currency: "NGN"}); err != nil {
		t.Fatalf("seed donation: %v", err)
	}

	h := NewHandler(store, paystack.New("sk_test", gw.URL), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-300")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an abandoned payment, got %d", w.Code)
	}
	var resp verifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("expected success=false for an abandoned payment")
	}

	d, err := store.GetByReference(ctx, "DN-300")
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if d.Status != models.DonationStatusPending {
		t.Errorf("expected status pending, got %q", d.Status)
	}
}

func TestHandleVerify_UnknownAtGateway(t *testing.T) {
	db := testutil.SetupTestDB(t)

	gw := fakeGateway(t, nil)
	defer gw.Close()

	h := NewHandler(donationstore.New(db), paystack.New("sk_test", gw.URL), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-404")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a reference the gateway rejects, got %d", w.Code)
	}
}

func TestHandleVerify_UninitiatedReferenceIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gw := fakeGateway(t, map[string]string{"DN-500": "success"})
	defer gw.Close()

	store := donationstore.New(db)
	h := NewHandler(store, paystack.New("sk_test", gw.URL), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-500")))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a reference with no local donation, got %d: %s", w.Code, w.Body.String())
	}

	// Verification must never invent a donation record.
	if _, err := store.GetByReference(ctx, "DN-500"); err != donationstore.ErrNotFound {
		t.Errorf("expected no donation record, got %v", err)
	}
}

func TestHandleVerify_GatewayDownIsServerError(t *testing.T) {
	db := testutil.SetupTestDB(t)

	gw := fakeGateway(t, nil)
	gw.Close() // connection refused from here on

	h := NewHandler(donationstore.New(db), paystack.New("sk_test", gw.URL), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", verifyRequestBody("DN-600")))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 when the gateway is unreachable, got %d", w.Code)
	}
}

func TestHandleInitiate_RecordsPendingDonation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := donationstore.New(db)
	h := NewHandler(store, paystack.New("sk_test", ""), nil, zap.NewNop())

	body := `{"reference":"DN-700","amount":500000,"donor_name":"Fatima Sani","donor_email":"fatima@example.com"}`
	w := httptest.NewRecorder()
	h.HandleInitiate(w, httptest.NewRequest(http.MethodPost, "/initiate", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	d, err := store.GetByReference(ctx, "DN-700")
	if err != nil {
		t.Fatalf("GetByReference failed: %v", err)
	}
	if d.Status != models.DonationStatusPending {
		t.Errorf("expected status pending, got %q", d.Status)
	}
	if d.Currency != "NGN" {
		t.Errorf("expected NGN default currency, got %q", d.Currency)
	}
	if d.DonorEmail != "fatima@example.com" {
		t.Errorf("expected donor email stored, got %q", d.DonorEmail)
	}
}

func TestHandleInitiate_DuplicateReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The duplicate comes from the unique reference index.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := donationstore.New(db)
	h := NewHandler(store, paystack.New("sk_test", ""), nil, zap.NewNop())

	body := `{"reference":"DN-800","amount":500000}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		w := httptest.NewRecorder()
		h.HandleInitiate(w, httptest.NewRequest(http.MethodPost, "/initiate", strings.NewReader(body)))
		if w.Code != want {
			t.Fatalf("attempt %d: expected %d, got %d: %s", i+1, want, w.Code, w.Body.String())
		}
	}
}

func TestHandleInitiate_RejectsNonPositiveAmount(t *testing.T) {
	h := NewHandler(nil, paystack.New("sk_test", ""), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleInitiate(w, httptest.NewRequest(http.MethodPost, "/initiate",
		strings.NewReader(`{"reference":"DN-900","amount":0}`)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a zero amount, got %d", w.Code)
	}
}

func TestHandleVerify_MissingReference(t *testing.T) {
	h := NewHandler(nil, paystack.New("sk_test", ""), nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.HandleVerify(w, httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(`{}`)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
