// internal/app/store/team/teamstore.go
package teamstore

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
)

var (
	ErrNotFound     = errors.New("team member not found")
	ErrNameRequired = errors.New("name is required")
)

// Store provides CRUD over the team_members collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_members")}
}

// Create inserts a new team member, defaulting visibility to visible.
func (s *Store) Create(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return models.TeamMember{}, ErrNameRequired
	}

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	if m.Visibility == "" {
		m.Visibility = models.VisibilityVisible
	}
	m.CreatedAt = now
	m.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.TeamMember{}, err
	}
	return m, nil
}

// Update modifies name, roles, image, and visibility.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.TeamMember) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if n := strings.TrimSpace(mut.Name); n != "" {
		set["name"] = n
		set["name_ci"] = text.Fold(n)
	}
	if mut.Roles != nil {
		set["roles"] = mut.Roles
	}
	if mut.ImageURL != "" {
		set["image_url"] = mut.ImageURL
	}
	if mut.Visibility != "" {
		set["visibility"] = mut.Visibility
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

// SetVisibility flips a single member between visible and hidden.
func (s *Store) SetVisibility(ctx context.Context, id primitive.ObjectID, visibility string) error {
	if visibility != models.VisibilityVisible && visibility != models.VisibilityHidden {
		return errors.New("visibility must be 'visible' or 'hidden'")
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"visibility": visibility,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns one member.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.TeamMember, error) {
	var m models.TeamMember
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TeamMember{}, ErrNotFound
	}
	if err != nil {
		return models.TeamMember{}, err
	}
	return m, nil
}

// Delete removes one member.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns members sorted by name. When visibleOnly is set, hidden
// members are excluded (public team page).
func (s *Store) List(ctx context.Context, visibleOnly bool) ([]models.TeamMember, error) {
	filter := bson.M{}
	if visibleOnly {
		filter["visibility"] = models.VisibilityVisible
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TeamMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
