package programstore_test

import (
	"testing"

	programstore "github.com/almanarfoundation/manarhub/internal/app/store/programs"
	"github.com/almanarfoundation/manarhub/internal/app/system/status"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
)

func TestStore_Create_DefaultsToDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := programstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Program{
		Title:    "Quran Memorization Classes",
		Category: "Hausa",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != status.Draft {
		t.Errorf("status: got %q, want draft", created.Status)
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
}

func TestStore_Create_MissingTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := programstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Program{Title: "   "})
	if err != programstore.ErrTitleRequired {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestStore_Update_RejectsUnknownStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := programstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Program{Title: "Orphan Sponsorship"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, created.ID, models.Program{Status: "archived"}); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestStore_List_PublishedOnlyHidesDrafts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := programstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Program{Title: "Draft Program"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	published, err := store.Create(ctx, models.Program{
		Title:  "Published Program",
		Status: status.Published,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(all))
	}

	public, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(public) != 1 || public[0].ID != published.ID {
		t.Errorf("expected only %s in the public list, got %+v", published.ID.Hex(), public)
	}
}
