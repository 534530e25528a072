// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	auditstore "github.com/almanarfoundation/manarhub/internal/app/store/audit"
	"github.com/almanarfoundation/manarhub/internal/app/system/paging"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/app/system/webjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the admin audit trail viewer.
type Handler struct {
	Audit *auditstore.Store
	Log   *zap.Logger
}

func NewHandler(store *auditstore.Store, log *zap.Logger) *Handler {
	return &Handler{Audit: store, Log: log}
}

type eventResponse struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	ActorID       string            `json:"actor_id,omitempty"`
	TargetID      string            `json:"target_id,omitempty"`
	IP            string            `json:"ip,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// HandleList serves GET / with optional category, event_type, actor_id,
// start_date, end_date (YYYY-MM-DD), and page query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	page := paging.ParsePage(q.Get("page"))

	filter := auditstore.QueryFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		EventType: strings.TrimSpace(q.Get("event_type")),
		Limit:     paging.PageSize,
		Offset:    paging.Skip(page),
	}

	if s := q.Get("actor_id"); s != "" {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "invalid actor_id")
			return
		}
		filter.ActorID = &oid
	}
	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartTime = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		endOfDay := t.Add(24*time.Hour - time.Second)
		filter.EndTime = &endOfDay
	}

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		h.Log.Error("audit query failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load audit events")
		return
	}
	total, err := h.Audit.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("audit count failed", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load audit events")
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp := eventResponse{
			ID:            e.ID.Hex(),
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			IP:            e.IP,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.ActorID != nil {
			resp.ActorID = e.ActorID.Hex()
		}
		if e.TargetID != nil {
			resp.TargetID = e.TargetID.Hex()
		}
		out = append(out, resp)
	}

	webjson.OK(w, map[string]any{
		"events":    out,
		"total":     total,
		"page":      page,
		"page_size": paging.PageSize,
	})
}
