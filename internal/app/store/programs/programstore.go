// internal/app/store/programs/programstore.go
package programstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/almanarfoundation/manarhub/internal/app/system/status"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("program not found")
	ErrTitleRequired = errors.New("title is required")
)

// Store provides CRUD over the programs collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("programs")}
}

// Create inserts a new program, defaulting to draft.
func (s *Store) Create(ctx context.Context, p models.Program) (models.Program, error) {
	if strings.TrimSpace(p.Title) == "" {
		return models.Program{}, ErrTitleRequired
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	if p.Status == "" {
		p.Status = status.Draft
	}
	p.CreatedAt = now
	p.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Program{}, err
	}
	return p, nil
}

// Update modifies mutable fields. Description may be cleared to empty.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Program) error {
	set := bson.M{
		"description": mut.Description,
		"updated_at":  time.Now().UTC(),
	}

	if t := strings.TrimSpace(mut.Title); t != "" {
		set["title"] = t
		set["title_ci"] = text.Fold(t)
	}
	if mut.Category != "" {
		set["category"] = mut.Category
	}
	if mut.CoverURL != "" {
		set["cover_url"] = mut.CoverURL
	}
	if mut.Status != "" {
		if !status.IsValid(mut.Status) {
			return errors.New("status must be 'draft' or 'published'")
		}
		set["status"] = mut.Status
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns one program.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Program, error) {
	var p models.Program
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Program{}, ErrNotFound
	}
	if err != nil {
		return models.Program{}, err
	}
	return p, nil
}

// Delete removes one program.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns programs newest first. When publishedOnly is set, drafts
// are excluded (public programs page).
func (s *Store) List(ctx context.Context, publishedOnly bool) ([]models.Program, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["status"] = status.Published
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Program
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
