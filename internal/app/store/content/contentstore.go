// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/almanarfoundation/manarhub/internal/app/system/categories"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, one per content kind.
const (
	CollAudios   = "audios"
	CollVideos   = "videos"
	CollPodcasts = "podcasts"
	CollEbooks   = "ebooks"
	CollArticles = "articles"
	CollPhotos   = "gallery_photos"
)

var (
	ErrNotFound        = errors.New("content item not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidCategory = errors.New("category must be English, Hausa, or Arabic")
)

// Store provides CRUD over one content collection. The same store type
// serves audios, videos, podcasts, ebooks, articles, and gallery
// photos; only the collection name differs.
type Store struct {
	c    *mongo.Collection
	kind string
}

// New creates a Store for the given kind over its collection.
func New(db *mongo.Database, collection, kind string) *Store {
	return &Store{c: db.Collection(collection), kind: kind}
}

// Kind returns the content kind this store serves.
func (s *Store) Kind() string { return s.kind }

// Create inserts a new item, setting TitleCI and timestamps.
func (s *Store) Create(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return models.ContentItem{}, ErrTitleRequired
	}
	if !categories.IsValid(item.Category) {
		return models.ContentItem{}, ErrInvalidCategory
	}

	now := time.Now().UTC()
	item.ID = primitive.NewObjectID()
	item.TitleCI = text.Fold(item.Title)
	item.Category = categories.Canonical(item.Category)
	item.CreatedAt = now
	item.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, item); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// Update modifies mutable fields and refreshes UpdatedAt. Zero-valued
// fields in mut are left untouched except Description/Body/Author,
// which may be cleared.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.ContentItem) error {
	set := bson.M{}
	unset := bson.M{}

	if strings.TrimSpace(mut.Title) != "" {
		set["title"] = mut.Title
		set["title_ci"] = text.Fold(mut.Title)
	}
	if mut.Category != "" {
		if !categories.IsValid(mut.Category) {
			return ErrInvalidCategory
		}
		set["category"] = categories.Canonical(mut.Category)
	}

	// Group membership: set, move, or clear.
	if mut.GroupID != nil {
		if mut.GroupID.IsZero() {
			unset["group_id"] = ""
			unset["group_title"] = ""
		} else {
			set["group_id"] = *mut.GroupID
			set["group_title"] = mut.GroupTitle
		}
	}

	if mut.MediaURL != "" {
		set["media_url"] = mut.MediaURL
		set["file_name"] = mut.FileName
		set["file_size"] = mut.FileSize
	}
	if mut.CoverURL != "" {
		set["cover_url"] = mut.CoverURL
	}
	if mut.Status != "" {
		set["status"] = mut.Status
	}
	if mut.ContentType != "" {
		set["content_type"] = mut.ContentType
	}

	// Free-text fields may be cleared to empty.
	set["description"] = mut.Description
	set["body"] = mut.Body
	set["author"] = mut.Author

	set["updated_at"] = time.Now().UTC()

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns one item.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ContentItem, error) {
	var item models.ContentItem
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ContentItem{}, ErrNotFound
	}
	if err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// Delete removes one item. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// TitleExists reports whether another item already uses title
// (case/diacritic-insensitive). Pass the item's own id as exclude on
// edit flows so its current title never counts as a duplicate.
func (s *Store) TitleExists(ctx context.Context, title string, exclude primitive.ObjectID) (bool, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false, nil
	}
	filter := bson.M{"title_ci": text.Fold(trimmed)}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.c.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFilter narrows List results. Zero values mean "no constraint".
type ListFilter struct {
	Category    string
	GroupID     *primitive.ObjectID
	Status      string
	ContentType string
	Search      string // matched against title_ci as a prefix
}

func (f ListFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = categories.Canonical(f.Category)
	}
	if f.GroupID != nil && !f.GroupID.IsZero() {
		filter["group_id"] = *f.GroupID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.ContentType != "" {
		filter["content_type"] = f.ContentType
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		filter["title_ci"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	return filter
}

// List returns items matching the filter, newest first, with optional
// find options layered on top (limit, skip, sort overrides).
func (s *Store) List(ctx context.Context, f ListFilter, opts ...*options.FindOptions) ([]models.ContentItem, error) {
	findOpts := append([]*options.FindOptions{
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	}, opts...)

	cur, err := s.c.Find(ctx, f.toBSON(), findOpts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ContentItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of items matching the filter.
func (s *Store) Count(ctx context.Context, f ListFilter) (int64, error) {
	return s.c.CountDocuments(ctx, f.toBSON())
}
