// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Visibility values for team and leadership members.
const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

// TeamMember is a staff profile shown on the public team page.
type TeamMember struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"name_ci"`
	Roles      []string           `bson:"roles" json:"roles"`
	ImageURL   string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Visibility string             `bson:"visibility" json:"visibility"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// LeadershipMember is a board/leadership profile. Order controls the
// manual display sequence on the leadership directory; it is only ever
// used for relative sorting, so gaps left by deletions are harmless.
type LeadershipMember struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"name_ci"`
	Role       string             `bson:"role" json:"role"`
	ImageURL   string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Order      int                `bson:"order" json:"order"`
	Visibility string             `bson:"visibility" json:"visibility"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
