package audit

import (
	"context"
	"testing"
	"time"

	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedEvents(t *testing.T, ctx context.Context, s *Store) (actor primitive.ObjectID) {
	t.Helper()

	actor = primitive.NewObjectID()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []Event{
		{Timestamp: base, Category: CategoryAuth, EventType: EventLoginSuccess, ActorID: &actor, Success: true},
		{Timestamp: base.Add(time.Minute), Category: CategoryAuth, EventType: EventLoginFailedWrongPassword, Success: false},
		{Timestamp: base.Add(2 * time.Minute), Category: CategoryAdmin, EventType: EventContentCreated, ActorID: &actor, Success: true},
		{Timestamp: base.Add(48 * time.Hour), Category: CategoryAdmin, EventType: EventContentDeleted, ActorID: &actor, Success: true},
	}
	for _, e := range events {
		if err := s.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	return actor
}

func TestQuery_FiltersByCategoryAndType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	seedEvents(t, ctx, s)

	got, err := s.Query(ctx, QueryFilter{Category: CategoryAdmin})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 admin events, got %d", len(got))
	}
	if !got[0].Timestamp.After(got[1].Timestamp) {
		t.Error("expected events sorted newest first")
	}

	got, err = s.Query(ctx, QueryFilter{EventType: EventLoginSuccess})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 login_success event, got %d", len(got))
	}
}

func TestQuery_FiltersByActorAndTimeRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	actor := seedEvents(t, ctx, s)

	got, err := s.Query(ctx, QueryFilter{ActorID: &actor})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 events for actor, got %d", len(got))
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	got, err = s.Query(ctx, QueryFilter{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 events on March 1, got %d", len(got))
	}
}

func TestCountByFilter_MatchesQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	seedEvents(t, ctx, s)

	n, err := s.CountByFilter(ctx, QueryFilter{Category: CategoryAuth})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 auth events, got %d", n)
	}
}

func TestLog_StampsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	if err := s.Log(ctx, Event{Category: CategoryAuth, EventType: EventLogout, Success: true}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	got, err := s.Recent(ctx, CategoryAuth, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected Log to stamp a timestamp")
	}
}
