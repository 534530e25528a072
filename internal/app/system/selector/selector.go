// internal/app/system/selector/selector.go
//
// Package selector implements the category-filtered group dropdown used
// by the audio/ebook/podcast forms. The dashboard fetches all groups of
// a kind once, then narrows them by the currently chosen language
// category; changing the category must drop any selection that does not
// belong to the new category.
package selector

import (
	"fmt"

	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterByCategory returns the groups whose Category equals category,
// preserving input order.
func FilterByCategory(groups []models.Group, category string) []models.Group {
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		if g.Category == category {
			out = append(out, g)
		}
	}
	return out
}

// ResetSelection returns selected if it still belongs to filtered,
// otherwise the zero ObjectID. Call it whenever the category changes so
// a stale selection is never rendered against the wrong option list.
func ResetSelection(filtered []models.Group, selected primitive.ObjectID) primitive.ObjectID {
	for _, g := range filtered {
		if g.ID == selected {
			return selected
		}
	}
	return primitive.NilObjectID
}

// EmptyPlaceholder is the disabled option shown instead of hiding the
// selector when no groups exist for the category, e.g.
// "No shows found for Hausa".
func EmptyPlaceholder(kindPlural, category string) string {
	return fmt.Sprintf("No %s found for %s", kindPlural, category)
}
