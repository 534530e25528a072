// internal/app/features/content/handler.go
package content

import (
	"context"
	"net/http"
	"strconv"

	"github.com/almanarfoundation/manarhub/internal/app/store/audit"
	contentstore "github.com/almanarfoundation/manarhub/internal/app/store/content"
	groupstore "github.com/almanarfoundation/manarhub/internal/app/store/groups"
	"github.com/almanarfoundation/manarhub/internal/app/system/auditlog"
	"github.com/almanarfoundation/manarhub/internal/app/system/auth"
	"github.com/almanarfoundation/manarhub/internal/app/system/htmlsanitize"
	"github.com/almanarfoundation/manarhub/internal/app/system/inputval"
	"github.com/almanarfoundation/manarhub/internal/app/system/paging"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/titlecheck"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin CRUD surface for one content kind. The same
// handler code runs for audios, videos, podcasts, ebooks, articles, and
// gallery photos; groups is nil for kinds that have no grouping entity.
type Handler struct {
	Store      *contentstore.Store
	Groups     *groupstore.Store
	KindPlural string // used in selector placeholders, e.g. "series", "shows"
	Audit      *auditlog.Logger
	Log        *zap.Logger

	seq titlecheck.Sequencer
}

// NewHandler builds a Handler for one content kind.
func NewHandler(store *contentstore.Store, groups *groupstore.Store, kindPlural string, auditLogger *auditlog.Logger, log *zap.Logger) *Handler {
	return &Handler{
		Store:      store,
		Groups:     groups,
		KindPlural: kindPlural,
		Audit:      auditLogger,
		Log:        log,
	}
}

// HandleList serves GET / with filters category, group_id, status,
// content_type, q, and page.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filter := contentstore.ListFilter{
		Category:    q.Get("category"),
		Status:      q.Get("status"),
		ContentType: q.Get("content_type"),
		Search:      q.Get("q"),
	}
	if gid := q.Get("group_id"); gid != "" {
		oid, err := primitive.ObjectIDFromHex(gid)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "invalid group_id")
			return
		}
		filter.GroupID = &oid
	}

	page := paging.ParsePage(q.Get("page"))
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.Log.Error("counting content failed", zap.Error(err), zap.String("kind", h.Store.Kind()))
		webjson.Error(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	items, err := h.Store.List(ctx, filter, paging.FindOptions(page))
	if err != nil {
		h.Log.Error("listing content failed", zap.Error(err), zap.String("kind", h.Store.Kind()))
		webjson.Error(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	webjson.OK(w, listResponse{
		Items: items,
		Total: total,
		Page:  page,
		Pages: paging.PageCount(total),
	})
}

// HandleGet serves GET /{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	item, err := h.Store.GetByID(ctx, id)
	if err == contentstore.ErrNotFound {
		webjson.Error(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		h.Log.Error("fetching content failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch item")
		return
	}
	webjson.OK(w, item)
}

// HandleCreate serves POST /.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	item := models.ContentItem{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		CoverURL:    req.CoverURL,
		Body:        htmlsanitize.Sanitize(req.Body),
		ContentType: req.ContentType,
		Author:      req.Author,
		Status:      req.Status,
	}

	if req.GroupID != "" {
		group, ok := h.resolveGroup(ctx, w, req.GroupID)
		if !ok {
			return
		}
		item.GroupID = &group.ID
		item.GroupTitle = group.Title
	}

	created, err := h.Store.Create(ctx, item)
	switch err {
	case nil:
	case contentstore.ErrTitleRequired, contentstore.ErrInvalidCategory:
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.Log.Error("creating content failed", zap.Error(err), zap.String("kind", h.Store.Kind()))
		webjson.Error(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.auditAction(ctx, r, audit.EventContentCreated, created.ID)
	webjson.Created(w, created)
}

// HandleUpdate serves PUT /{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		webjson.Error(w, http.StatusBadRequest, res.First())
		return
	}

	mut := models.ContentItem{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		CoverURL:    req.CoverURL,
		Body:        htmlsanitize.Sanitize(req.Body),
		ContentType: req.ContentType,
		Author:      req.Author,
		Status:      req.Status,
	}

	if req.GroupID != nil {
		if *req.GroupID == "" {
			zero := primitive.NilObjectID
			mut.GroupID = &zero
		} else {
			group, ok := h.resolveGroup(ctx, w, *req.GroupID)
			if !ok {
				return
			}
			mut.GroupID = &group.ID
			mut.GroupTitle = group.Title
		}
	}

	err := h.Store.Update(ctx, id, mut)
	switch err {
	case nil:
	case contentstore.ErrNotFound:
		webjson.Error(w, http.StatusNotFound, "item not found")
		return
	case contentstore.ErrInvalidCategory:
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	default:
		h.Log.Error("updating content failed", zap.Error(err), zap.String("kind", h.Store.Kind()))
		webjson.Error(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.auditAction(ctx, r, audit.EventContentUpdated, id)

	item, err := h.Store.GetByID(ctx, id)
	if err != nil {
		webjson.Error(w, http.StatusInternalServerError, "failed to fetch updated item")
		return
	}
	webjson.OK(w, item)
}

// HandleDelete serves DELETE /{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	n, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.Log.Error("deleting content failed", zap.Error(err), zap.String("kind", h.Store.Kind()))
		webjson.Error(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if n == 0 {
		webjson.Error(w, http.StatusNotFound, "item not found")
		return
	}

	h.auditAction(ctx, r, audit.EventContentDeleted, id)
	webjson.OK(w, map[string]any{"deleted": true})
}

// HandleTitleCheck serves GET /title-check?title=…&exclude=…&seq=….
//
// The dashboard fires one check per keystroke without cancelling earlier
// ones, so responses can arrive out of order. Each check carries a
// client sequence number; the handler tracks the highest applied seq
// and flags out-of-order results as stale so the dashboard discards
// them instead of flipping the duplicate warning the wrong way.
func (h *Handler) HandleTitleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q := r.URL.Query()
	title := q.Get("title")

	seq, err := strconv.ParseUint(q.Get("seq"), 10, 64)
	if err != nil || seq == 0 {
		seq = h.seq.Next()
	}

	exclude := primitive.NilObjectID
	if ex := q.Get("exclude"); ex != "" {
		exclude, err = primitive.ObjectIDFromHex(ex)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "invalid exclude id")
			return
		}
	}

	taken, err := h.Store.TitleExists(ctx, title, exclude)
	if err != nil {
		h.Log.Error("title check failed", zap.Error(err), zap.String("kind", h.Store.Kind()))
		webjson.Error(w, http.StatusInternalServerError, "title check failed")
		return
	}

	result := titlecheck.Result{Seq: seq, Title: title, Taken: taken}
	applied := h.seq.Apply(result)

	webjson.OK(w, map[string]any{
		"seq":   result.Seq,
		"title": result.Title,
		"taken": result.Taken,
		"stale": !applied,
	})
}

// pathID parses the {id} URL parameter, writing a 400 on failure.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// resolveGroup loads the referenced group, writing an error response
// when the reference is invalid or the kind has no grouping entity.
func (h *Handler) resolveGroup(ctx context.Context, w http.ResponseWriter, hexID string) (models.Group, bool) {
	if h.Groups == nil {
		webjson.Error(w, http.StatusBadRequest, "this content kind has no groups")
		return models.Group{}, false
	}
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "invalid group id")
		return models.Group{}, false
	}
	group, err := h.Groups.GetByID(ctx, oid)
	if err == groupstore.ErrNotFound {
		webjson.Error(w, http.StatusBadRequest, "group does not exist")
		return models.Group{}, false
	}
	if err != nil {
		h.Log.Error("resolving group failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "failed to resolve group")
		return models.Group{}, false
	}
	return group, true
}

func (h *Handler) auditAction(ctx context.Context, r *http.Request, eventType string, targetID primitive.ObjectID) {
	var actorID *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			actorID = &oid
		}
	}
	h.Audit.AdminAction(ctx, r, eventType, actorID, &targetID, map[string]string{
		"kind": h.Store.Kind(),
	})
}
