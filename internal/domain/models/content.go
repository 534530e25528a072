// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Content kinds. Each kind lives in its own collection but shares the
// ContentItem shape; articles additionally use ContentType to split the
// blog/news/research feeds.
const (
	KindAudio   = "audio"
	KindVideo   = "video"
	KindPodcast = "podcast"
	KindEbook   = "ebook"
	KindArticle = "article"
	KindPhoto   = "photo"
)

// ContentItem is a single piece of published media: an audio lecture, a
// video, a podcast episode, an ebook, an article, or a gallery photo.
//
// Items may belong to a grouping entity (series/playlist/show/collection/
// album). The reference is keyed by the group's immutable ObjectID;
// GroupTitle is denormalized for display and refreshed when the group is
// renamed, so renames never orphan children.
type ContentItem struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	TitleCI string             `bson:"title_ci" json:"title_ci"` // lowercase, diacritics-stripped

	// Language category: "English", "Hausa", or "Arabic".
	Category string `bson:"category" json:"category"`

	GroupID    *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`
	GroupTitle string              `bson:"group_title,omitempty" json:"group_title,omitempty"`

	// Primary media file (audio/video/pdf/image), uploaded to blob storage.
	MediaURL string `bson:"media_url,omitempty" json:"media_url,omitempty"`
	FileName string `bson:"file_name,omitempty" json:"file_name,omitempty"`
	FileSize int64  `bson:"file_size,omitempty" json:"file_size,omitempty"`

	// Cover image (ebooks, articles).
	CoverURL string `bson:"cover_url,omitempty" json:"cover_url,omitempty"`

	// Article fields. Body is sanitized HTML; ContentType is one of
	// "blog", "news", "research".
	Body        string `bson:"body,omitempty" json:"body,omitempty"`
	ContentType string `bson:"content_type,omitempty" json:"content_type,omitempty"`
	Author      string `bson:"author,omitempty" json:"author,omitempty"`

	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// "draft" or "published". Empty means published (media kinds have no
	// draft state in the admin UI).
	Status string `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// InGroup reports whether the item references a grouping entity.
func (c *ContentItem) InGroup() bool {
	return c.GroupID != nil && !c.GroupID.IsZero()
}
