// internal/domain/models/partner.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partner inquiry statuses. The workflow is one-directional:
// new -> contacted -> partnered | declined, with partnered and declined
// terminal.
const (
	PartnerStatusNew       = "new"
	PartnerStatusContacted = "contacted"
	PartnerStatusPartnered = "partnered"
	PartnerStatusDeclined  = "declined"
)

// PartnerInquiry is a partnership request submitted through the public
// site and worked through the admin dashboard.
type PartnerInquiry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Organization  string             `bson:"organization" json:"organization"`
	ContactPerson string             `bson:"contact_person" json:"contact_person"`
	Email         string             `bson:"email" json:"email"`
	Message       string             `bson:"message,omitempty" json:"message,omitempty"`
	Status        string             `bson:"status" json:"status"`

	SubmittedAt time.Time  `bson:"submitted_at" json:"submitted_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
