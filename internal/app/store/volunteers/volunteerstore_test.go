package volunteerstore_test

import (
	"testing"
	"time"

	volunteerstore "github.com/almanarfoundation/manarhub/internal/app/store/volunteers"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_StampsSubmittedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Volunteer{
		Name:      "Musa Ibrahim",
		Email:     "musa@example.com",
		Interests: []string{"teaching"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.SubmittedAt.IsZero() {
		t.Error("expected SubmittedAt to be stamped")
	}
	if time.Since(created.SubmittedAt) > time.Minute {
		t.Errorf("SubmittedAt is not recent: %v", created.SubmittedAt)
	}
}

func TestStore_Create_MissingName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Volunteer{Name: "   "})
	if err != volunteerstore.ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestStore_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, models.Volunteer{Name: "First Signup"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := store.Create(ctx, models.Volunteer{Name: "Second Signup"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 signups, got %d", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Error("expected signups sorted newest first")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := volunteerstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Volunteer{Name: "Musa Ibrahim"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}

	if _, err := store.GetByID(ctx, created.ID); err != volunteerstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
