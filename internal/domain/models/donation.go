// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation statuses.
const (
	DonationStatusPending = "pending"
	DonationStatusSuccess = "success"
)

// Donation tracks a Paystack-initiated donation. Reference is the
// gateway's transaction key and carries a unique index; verification
// transitions status pending -> success exactly once.
type Donation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"`
	Status    string             `bson:"status" json:"status"`

	// Amount is in the currency's minor unit (kobo for NGN).
	Amount   int64  `bson:"amount" json:"amount"`
	Currency string `bson:"currency" json:"currency"`
	Channel  string `bson:"channel,omitempty" json:"channel,omitempty"`

	DonorName  string `bson:"donor_name,omitempty" json:"donor_name,omitempty"`
	DonorEmail string `bson:"donor_email,omitempty" json:"donor_email,omitempty"`

	PaidAt    *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
