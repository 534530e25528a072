package leaderstore_test

import (
	"testing"

	leaderstore "github.com/almanarfoundation/manarhub/internal/app/store/leaders"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Create_AppendsToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, models.LeadershipMember{Name: "Chairman", Role: "Chairman"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, models.LeadershipMember{Name: "Secretary", Role: "Secretary"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.Order != 1 {
		t.Errorf("first order: got %d, want 1", first.Order)
	}
	if second.Order != 2 {
		t.Errorf("second order: got %d, want 2", second.Order)
	}
}

func TestStore_MoveUp_SwapsNeighbors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateLeadershipMember(ctx, "Aisha", "Chairman", 1)
	fixtures.CreateLeadershipMember(ctx, "Bashir", "Secretary", 2)
	c := fixtures.CreateLeadershipMember(ctx, "Chidi", "Treasurer", 3)

	if err := store.MoveUp(ctx, c.ID); err != nil {
		t.Fatalf("MoveUp failed: %v", err)
	}

	got, err := store.ListOrdered(ctx, false)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	wantNames := []string{"Aisha", "Chidi", "Bashir"}
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestStore_MoveUpThenDown_RestoresOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateLeadershipMember(ctx, "Aisha", "Chairman", 1)
	b := fixtures.CreateLeadershipMember(ctx, "Bashir", "Secretary", 2)
	fixtures.CreateLeadershipMember(ctx, "Chidi", "Treasurer", 3)

	if err := store.MoveUp(ctx, b.ID); err != nil {
		t.Fatalf("MoveUp failed: %v", err)
	}
	if err := store.MoveDown(ctx, b.ID); err != nil {
		t.Fatalf("MoveDown failed: %v", err)
	}

	got, err := store.ListOrdered(ctx, false)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	wantNames := []string{"Aisha", "Bashir", "Chidi"}
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestStore_MoveUp_AtTop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	top := fixtures.CreateLeadershipMember(ctx, "Aisha", "Chairman", 1)
	fixtures.CreateLeadershipMember(ctx, "Bashir", "Secretary", 2)

	if err := store.MoveUp(ctx, top.ID); err != leaderstore.ErrAtBoundary {
		t.Errorf("expected ErrAtBoundary, got %v", err)
	}
}

func TestStore_MoveUp_WithOrderGaps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Deletions leave gaps; the swap must find the nearest neighbor.
	fixtures.CreateLeadershipMember(ctx, "Aisha", "Chairman", 1)
	c := fixtures.CreateLeadershipMember(ctx, "Chidi", "Treasurer", 7)

	if err := store.MoveUp(ctx, c.ID); err != nil {
		t.Fatalf("MoveUp failed: %v", err)
	}

	got, err := store.ListOrdered(ctx, false)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	if got[0].Name != "Chidi" || got[1].Name != "Aisha" {
		t.Errorf("order after gap swap: got %q, %q", got[0].Name, got[1].Name)
	}
}

func TestStore_ListOrdered_VisibleOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.LeadershipMember{Name: "Visible", Role: "Chairman"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	hidden, err := store.Create(ctx, models.LeadershipMember{Name: "Hidden", Role: "Secretary", Visibility: models.VisibilityHidden})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ListOrdered(ctx, true)
	if err != nil {
		t.Fatalf("ListOrdered failed: %v", err)
	}
	for _, m := range got {
		if m.ID == hidden.ID {
			t.Error("hidden member returned in visible-only listing")
		}
	}
}

func TestStore_MoveUp_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leaderstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.MoveUp(ctx, primitive.NewObjectID()); err != leaderstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
