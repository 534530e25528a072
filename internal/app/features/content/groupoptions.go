// internal/app/features/content/groupoptions.go
package content

import (
	"context"
	"net/http"

	"github.com/almanarfoundation/manarhub/internal/app/system/selector"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// groupNouns names the grouping entity each content kind belongs to,
// for the empty-category placeholder.
var groupNouns = map[string]string{
	"audios":   "series",
	"videos":   "playlists",
	"podcasts": "shows",
	"ebooks":   "collections",
	"photos":   "albums",
}

// HandleGroupOptions serves GET /group-options?category=…&selected=….
//
// Returns the groups of this kind narrowed to the chosen category. A
// selection that does not belong to the new category comes back empty,
// so the dashboard clears the dropdown instead of submitting a group
// from the wrong language.
func (h *Handler) HandleGroupOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if h.Groups == nil {
		webjson.Error(w, http.StatusNotFound, "this content kind has no groups")
		return
	}

	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		webjson.Error(w, http.StatusBadRequest, "category is required")
		return
	}

	selected := primitive.NilObjectID
	if sel := q.Get("selected"); sel != "" {
		oid, err := primitive.ObjectIDFromHex(sel)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "invalid selected id")
			return
		}
		selected = oid
	}

	// A failed group fetch degrades to an empty dropdown rather than
	// blocking the form; the editor can still save without a group.
	groups, err := h.Groups.List(ctx, "")
	if err != nil {
		h.Log.Error("listing groups failed", zap.Error(err))
		groups = nil
	}

	filtered := selector.FilterByCategory(groups, category)
	selected = selector.ResetSelection(filtered, selected)

	resp := groupOptionsResponse{Options: make([]groupOption, 0, len(filtered))}
	for _, g := range filtered {
		resp.Options = append(resp.Options, groupOption{ID: g.ID.Hex(), Title: g.Title})
	}
	if selected != primitive.NilObjectID {
		resp.Selected = selected.Hex()
	}
	if len(filtered) == 0 {
		resp.Placeholder = selector.EmptyPlaceholder(groupNouns[h.KindPlural], category)
	}

	webjson.OK(w, resp)
}
