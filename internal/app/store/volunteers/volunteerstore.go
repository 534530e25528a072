// internal/app/store/volunteers/volunteerstore.go
package volunteerstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound     = errors.New("volunteer signup not found")
	ErrNameRequired = errors.New("name is required")
)

// Store provides CRUD over volunteer signups.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("volunteers")}
}

// Create records a volunteer signup from the public site.
func (s *Store) Create(ctx context.Context, v models.Volunteer) (models.Volunteer, error) {
	if strings.TrimSpace(v.Name) == "" {
		return models.Volunteer{}, ErrNameRequired
	}

	v.ID = primitive.NewObjectID()
	v.NameCI = text.Fold(v.Name)
	v.SubmittedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}

// GetByID returns one signup.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Volunteer, error) {
	var v models.Volunteer
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Volunteer{}, ErrNotFound
	}
	if err != nil {
		return models.Volunteer{}, err
	}
	return v, nil
}

// Delete removes one signup.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns signups newest first.
func (s *Store) List(ctx context.Context) ([]models.Volunteer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Volunteer
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
