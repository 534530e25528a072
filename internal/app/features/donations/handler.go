// internal/app/features/donations/handler.go
package donations

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	donationstore "github.com/almanarfoundation/manarhub/internal/app/store/donations"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/paystack"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler records and verifies Paystack donations and serves the
// admin donations list.
type Handler struct {
	Store   *donationstore.Store
	Gateway *paystack.Client
	Audit   *auditlog.Logger
	Log     *zap.Logger
}

func NewHandler(store *donationstore.Store, gateway *paystack.Client, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{Store: store, Gateway: gateway, Audit: auditLogger, Log: log}
}

type initiateRequest struct {
	Reference  string `json:"reference"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	DonorName  string `json:"donor_name"`
	DonorEmail string `json:"donor_email"`
}

type verifyRequest struct {
	Reference string `json:"reference"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HandleInitiate serves POST /api/paystack/initiate. The donation page
// calls this before opening Paystack checkout, so every checkout
// reference has a pending donation on record for verification to
// settle.
func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req initiateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reference == "" {
		webjson.Error(w, http.StatusBadRequest, "reference is required")
		return
	}
	if req.Amount <= 0 {
		webjson.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.Currency == "" {
		req.Currency = "NGN"
	}

	d, err := h.Store.Create(ctx, models.Donation{
		Reference:  req.Reference,
		Amount:     req.Amount,
		Currency:   req.Currency,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
	})
	if err == donationstore.ErrDuplicateReference {
		webjson.Error(w, http.StatusConflict, "a donation with this reference already exists")
		return
	}
	if err != nil {
		h.Log.Error("recording donation failed", zap.Error(err), zap.String("reference", req.Reference))
		webjson.Error(w, http.StatusInternalServerError, "failed to record donation")
		return
	}

	webjson.Created(w, d)
}

// HandleVerify serves POST /api/paystack/verify. The donor's browser
// calls this after Paystack checkout closes; the server re-checks the
// reference against the gateway instead of trusting the client.
//
// Repeat verification of an already-settled reference is a success
// response without rewriting the stored settlement (donors reload the
// thank-you page).
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var req verifyRequest
	if err := webjson.Decode(r, &req); err != nil || req.Reference == "" {
		webjson.Error(w, http.StatusBadRequest, "reference is required")
		return
	}

	tx, err := h.Gateway.Verify(ctx, req.Reference)
	if errors.Is(err, paystack.ErrTransactionNotFound) {
		webjson.Write(w, http.StatusBadRequest, verifyResponse{Success: false, Message: "unknown transaction reference"})
		return
	}
	if err != nil {
		h.Log.Error("paystack verify failed", zap.Error(err), zap.String("reference", req.Reference))
		webjson.Write(w, http.StatusInternalServerError, verifyResponse{Success: false, Message: "verification unavailable, try again"})
		return
	}

	if !tx.Success() {
		webjson.Write(w, http.StatusBadRequest, verifyResponse{Success: false, Message: "payment was not completed"})
		return
	}

	paidAt := time.Now().UTC()
	if tx.PaidAt != nil {
		paidAt = *tx.PaidAt
	}

	already, err := h.Store.MarkSuccess(ctx, req.Reference, tx.Amount, tx.Currency, tx.Channel, paidAt)
	if err == donationstore.ErrNotFound {
		// Settled at the gateway but never initiated here; the donation
		// page always records a pending donation before checkout opens.
		webjson.Write(w, http.StatusNotFound, verifyResponse{Success: false, Message: "no donation with this reference"})
		return
	}
	if err != nil {
		h.Log.Error("settling donation failed", zap.Error(err), zap.String("reference", req.Reference))
		webjson.Write(w, http.StatusInternalServerError, verifyResponse{Success: false, Message: "failed to record donation"})
		return
	}

	if !already {
		h.Audit.AdminAction(ctx, r, audit.EventDonationVerified, nil, nil, map[string]string{
			"reference": req.Reference,
			"amount":    itoa64(tx.Amount),
			"currency":  tx.Currency,
		})
	}

	webjson.OK(w, verifyResponse{Success: true})
}

// HandleList serves GET / for the admin dashboard.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	donations, err := h.Store.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.Log.Error("listing donations failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to list donations")
		return
	}
	webjson.OK(w, map[string]any{"donations": donations})
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
