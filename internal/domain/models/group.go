// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a grouping entity: an audio series, ebook collection, video
// playlist, podcast show, or gallery album. Content items reference a
// group by its ObjectID; the child count is always derived by counting
// matching children, never stored on the group document.
type Group struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	TitleCI  string             `bson:"title_ci" json:"title_ci"`
	Category string             `bson:"category" json:"category"` // language category

	CoverURL string `bson:"cover_url,omitempty" json:"cover_url,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// GroupWithCount pairs a group with its derived child count for list
// screens.
type GroupWithCount struct {
	Group      `bson:",inline"`
	ChildCount int64 `bson:"-" json:"child_count"`
}
