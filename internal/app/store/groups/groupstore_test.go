package groupstore_test

import (
	"testing"

	groupstore "github.com/almanarfoundation/manarhub/internal/app/store/groups"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollAudioSeries, "audios", zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{Title: "Ramadan Tafsir", Category: "Hausa"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
}

func TestStore_Create_InvalidCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollAudioSeries, "audios", zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Group{Title: "Test", Category: "Yoruba"})
	if err != groupstore.ErrInvalidCategory {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestStore_Rename_RefreshesChildTitles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollAudioSeries, "audios", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	series := fixtures.CreateGroup(ctx, groupstore.CollAudioSeries, "Tafsir Series", "Hausa")
	ep := fixtures.CreateContentItem(ctx, "audios", "Ep1", "Hausa", &series)

	if err := store.Update(ctx, series.ID, models.Group{Title: "Complete Tafsir"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// The child still points at the same group and shows the new title.
	var got models.ContentItem
	if err := db.Collection("audios").FindOne(ctx, bson.M{"_id": ep.ID}).Decode(&got); err != nil {
		t.Fatalf("fetching child failed: %v", err)
	}
	if got.GroupID == nil || *got.GroupID != series.ID {
		t.Error("child lost its group reference after rename")
	}
	if got.GroupTitle != "Complete Tafsir" {
		t.Errorf("child group title: got %q, want %q", got.GroupTitle, "Complete Tafsir")
	}
}

func TestStore_ChildCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollAudioSeries, "audios", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	series := fixtures.CreateGroup(ctx, groupstore.CollAudioSeries, "Seerah", "English")
	fixtures.CreateContentItem(ctx, "audios", "Part 1", "English", &series)
	fixtures.CreateContentItem(ctx, "audios", "Part 2", "English", &series)
	fixtures.CreateContentItem(ctx, "audios", "Unrelated", "English", nil)

	n, err := store.ChildCount(ctx, series.ID)
	if err != nil {
		t.Fatalf("ChildCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ChildCount: got %d, want 2", n)
	}
}

func TestStore_CascadeDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollAudioSeries, "audios", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	series := fixtures.CreateGroup(ctx, groupstore.CollAudioSeries, "Doomed Series", "Arabic")
	fixtures.CreateContentItem(ctx, "audios", "Ep1", "Arabic", &series)
	fixtures.CreateContentItem(ctx, "audios", "Ep2", "Arabic", &series)
	survivor := fixtures.CreateContentItem(ctx, "audios", "Standalone", "Arabic", nil)

	removed, err := store.CascadeDelete(ctx, series.ID)
	if err != nil {
		t.Fatalf("CascadeDelete failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("children deleted: got %d, want 2", removed)
	}

	// Group gone.
	if _, err := store.GetByID(ctx, series.ID); err != groupstore.ErrNotFound {
		t.Errorf("expected ErrNotFound for deleted group, got %v", err)
	}

	// No orphaned children remain.
	n, err := db.Collection("audios").CountDocuments(ctx, bson.M{"group_id": series.ID})
	if err != nil {
		t.Fatalf("counting children failed: %v", err)
	}
	if n != 0 {
		t.Errorf("found %d orphaned children after cascade delete", n)
	}

	// Ungrouped items untouched.
	if err := db.Collection("audios").FindOne(ctx, bson.M{"_id": survivor.ID}).Err(); err != nil {
		t.Errorf("standalone item should survive cascade delete: %v", err)
	}
}

func TestStore_CascadeDelete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollAudioSeries, "audios", zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.CascadeDelete(ctx, primitive.NewObjectID())
	if err != groupstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_List_ByCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db, groupstore.CollVideoPlaylists, "videos", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateGroup(ctx, groupstore.CollVideoPlaylists, "Hausa Playlist", "Hausa")
	fixtures.CreateGroup(ctx, groupstore.CollVideoPlaylists, "English Playlist", "English")

	got, err := store.List(ctx, "Hausa")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d groups, want 1", len(got))
	}
	if got[0].Title != "Hausa Playlist" {
		t.Errorf("Title: got %q", got[0].Title)
	}
}
