// internal/app/system/paystack/paystack.go
//
// Package paystack is a minimal client for the one Paystack call this
// app makes: transaction verification by reference.
package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is Paystack's production API origin.
const DefaultBaseURL = "https://api.paystack.co"

// ErrTransactionNotFound is returned when the gateway has no
// transaction for the reference.
var ErrTransactionNotFound = errors.New("paystack: transaction not found")

// Transaction is the subset of the gateway's verify payload this app
// consumes. Amount is in the currency's minor unit (kobo for NGN).
type Transaction struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"` // "success", "failed", "abandoned", ...
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Channel   string     `json:"channel"`
	PaidAt    *time.Time `json:"paid_at"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// Success reports whether the gateway settled the transaction.
func (t Transaction) Success() bool { return t.Status == "success" }

// Client calls the Paystack API with a secret key.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// New builds a Client. baseURL may be empty to use production; tests
// point it at an httptest server.
func New(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type verifyEnvelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

// Verify looks up a transaction by reference. A gateway-side "not
// found" maps to ErrTransactionNotFound; transport and decode failures
// are returned as-is. A non-success transaction status is NOT an error
// here - callers inspect Transaction.Success().
func (c *Client) Verify(ctx context.Context, reference string) (Transaction, error) {
	if reference == "" {
		return Transaction{}, errors.New("paystack: empty reference")
	}

	endpoint := c.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Transaction{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Transaction{}, fmt.Errorf("paystack: verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Transaction{}, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Transaction{}, fmt.Errorf("paystack: verify returned HTTP %d", resp.StatusCode)
	}

	var env verifyEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Transaction{}, fmt.Errorf("paystack: decode verify response: %w", err)
	}
	if !env.Status {
		return Transaction{}, fmt.Errorf("paystack: verify rejected: %s", env.Message)
	}
	return env.Data, nil
}
