// internal/app/features/content/types.go
package content

import (
	"github.com/almanarfoundation/manarhub/internal/domain/models"
)

// createRequest is the JSON body for creating a content item. Fields
// that do not apply to a kind (Body for audios, MediaURL for articles)
// are simply left empty by the dashboard.
type createRequest struct {
	Title       string `json:"title" validate:"required,max=200" label:"Title"`
	Category    string `json:"category" validate:"required,category" label:"Category"`
	Description string `json:"description" validate:"max=2000" label:"Description"`
	GroupID     string `json:"group_id" validate:"max=24" label:"Group"`

	MediaURL string `json:"media_url" validate:"max=2048" label:"Media URL"`
	FileName string `json:"file_name" validate:"max=300" label:"File name"`
	FileSize int64  `json:"file_size" label:"File size"`
	CoverURL string `json:"cover_url" validate:"max=2048" label:"Cover URL"`

	Body        string `json:"body" label:"Body"`
	ContentType string `json:"content_type" validate:"max=30" label:"Content type"`
	Author      string `json:"author" validate:"max=120" label:"Author"`
	Status      string `json:"status" validate:"max=20" label:"Status"`
}

// updateRequest mirrors createRequest but everything is optional;
// empty strings leave stored values untouched except the free-text
// fields, which replace.
type updateRequest struct {
	Title       string  `json:"title" validate:"max=200" label:"Title"`
	Category    string  `json:"category" label:"Category"`
	Description string  `json:"description" validate:"max=2000" label:"Description"`
	GroupID     *string `json:"group_id" label:"Group"` // nil: untouched, "": clear, hex: move

	MediaURL string `json:"media_url" validate:"max=2048" label:"Media URL"`
	FileName string `json:"file_name" validate:"max=300" label:"File name"`
	FileSize int64  `json:"file_size" label:"File size"`
	CoverURL string `json:"cover_url" validate:"max=2048" label:"Cover URL"`

	Body        string `json:"body" label:"Body"`
	ContentType string `json:"content_type" validate:"max=30" label:"Content type"`
	Author      string `json:"author" validate:"max=120" label:"Author"`
	Status      string `json:"status" validate:"max=20" label:"Status"`
}

// listResponse wraps a page of items with the total for pagination.
type listResponse struct {
	Items []models.ContentItem `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Pages int                  `json:"pages"`
}

// groupOption is one entry in the category-filtered group dropdown.
type groupOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// groupOptionsResponse is the payload for the group selector. When no
// groups exist for the category, Options is empty and Placeholder holds
// the disabled option text.
type groupOptionsResponse struct {
	Options     []groupOption `json:"options"`
	Selected    string        `json:"selected"`
	Placeholder string        `json:"placeholder,omitempty"`
}
