// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/almanarfoundation/manarhub/internal/app/system/categories"
	"github.com/almanarfoundation/manarhub/internal/app/system/txn"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Grouping collections. Each pairs with the child collection whose
// items reference it.
const (
	CollAudioSeries      = "audio_series"
	CollEbookCollections = "ebook_collections"
	CollVideoPlaylists   = "video_playlists"
	CollPodcastShows     = "podcast_shows"
	CollGalleryAlbums    = "gallery_albums"
)

var (
	ErrNotFound        = errors.New("group not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidCategory = errors.New("category must be English, Hausa, or Arabic")
)

// Store provides CRUD for one grouping collection (series, collections,
// playlists, shows, albums) and owns the relationship to its child
// content collection: derived counts, rename refresh, cascade delete.
type Store struct {
	groups   *mongo.Collection
	children *mongo.Collection
	client   *mongo.Client
	log      *zap.Logger
}

// New creates a Store pairing a grouping collection with its child
// content collection.
func New(db *mongo.Database, groupColl, childColl string, log *zap.Logger) *Store {
	return &Store{
		groups:   db.Collection(groupColl),
		children: db.Collection(childColl),
		client:   db.Client(),
		log:      log,
	}
}

// Create inserts a new group.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	if strings.TrimSpace(g.Title) == "" {
		return models.Group{}, ErrTitleRequired
	}
	if !categories.IsValid(g.Category) {
		return models.Group{}, ErrInvalidCategory
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.TitleCI = text.Fold(g.Title)
	g.Category = categories.Canonical(g.Category)
	g.CreatedAt = now
	g.UpdatedAt = &now

	if _, err := s.groups.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Update modifies a group. A title change also refreshes the
// denormalized group_title on every child, in the same transaction, so
// children are never left pointing at a stale display title.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Group) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	retitled := false
	if t := strings.TrimSpace(mut.Title); t != "" {
		set["title"] = t
		set["title_ci"] = text.Fold(t)
		retitled = true
	}
	if mut.Category != "" {
		if !categories.IsValid(mut.Category) {
			return ErrInvalidCategory
		}
		set["category"] = categories.Canonical(mut.Category)
	}
	if mut.CoverURL != "" {
		set["cover_url"] = mut.CoverURL
	}

	return txn.WithTransaction(ctx, s.client, s.log, func(tc context.Context) error {
		res, err := s.groups.UpdateByID(tc, id, bson.M{"$set": set})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		if retitled {
			_, err = s.children.UpdateMany(tc,
				bson.M{"group_id": id},
				bson.M{"$set": bson.M{"group_title": set["title"]}})
		}
		return err
	})
}

// GetByID returns one group.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	err := s.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Group{}, ErrNotFound
	}
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns groups, optionally narrowed to one category, newest
// first.
func (s *Store) List(ctx context.Context, category string) ([]models.Group, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = categories.Canonical(category)
	}

	cur, err := s.groups.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Group
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChildCount derives the number of children referencing the group.
func (s *Store) ChildCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.children.CountDocuments(ctx, bson.M{"group_id": id})
}

// ChildTitles returns the titles of the group's children.
func (s *Store) ChildTitles(ctx context.Context, id primitive.ObjectID) ([]string, error) {
	cur, err := s.children.Find(ctx, bson.M{"group_id": id})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		Title string `bson:"title"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	titles := make([]string, len(docs))
	for i, d := range docs {
		titles[i] = d.Title
	}
	return titles, nil
}

// CascadeDelete removes the group and every child referencing it as one
// transaction: either the group and all currently-matched children go,
// or nothing does. A child inserted after the transaction commits would
// reference a group that no longer exists; that window is accepted for
// this low-concurrency admin tool.
//
// Returns the number of children deleted alongside the group.
func (s *Store) CascadeDelete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var removed int64
	err := txn.WithTransaction(ctx, s.client, s.log, func(tc context.Context) error {
		res, err := s.groups.DeleteOne(tc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		childRes, err := s.children.DeleteMany(tc, bson.M{"group_id": id})
		if err != nil {
			return err
		}
		removed = childRes.DeletedCount
		return nil
	})
	return removed, err
}
