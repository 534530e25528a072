// internal/app/store/leaders/leaderstore.go
package leaderstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/almanarfoundation/manarhub/internal/app/system/txn"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("leadership member not found")
	ErrNameRequired = errors.New("name is required")
	ErrAtBoundary   = errors.New("member has no neighbor to swap with in that direction")
)

// Store provides CRUD and manual ordering over leadership_members.
type Store struct {
	c      *mongo.Collection
	client *mongo.Client
	log    *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{c: db.Collection("leadership_members"), client: db.Client(), log: log}
}

// Create inserts a member at the end of the display order
// (max existing order + 1). Gaps left by deletions are never compacted;
// order is only used for relative sorting.
func (s *Store) Create(ctx context.Context, m models.LeadershipMember) (models.LeadershipMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return models.LeadershipMember{}, ErrNameRequired
	}

	maxOrder, err := s.maxOrder(ctx)
	if err != nil {
		return models.LeadershipMember{}, err
	}

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.Order = maxOrder + 1
	if m.Visibility == "" {
		m.Visibility = models.VisibilityVisible
	}
	m.CreatedAt = now
	m.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.LeadershipMember{}, err
	}
	return m, nil
}

func (s *Store) maxOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var top models.LeadershipMember
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Order, nil
}

// Update modifies profile fields; Order is never changed here (use
// MoveUp/MoveDown).
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.LeadershipMember) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if n := strings.TrimSpace(mut.Name); n != "" {
		set["name"] = n
		set["name_ci"] = text.Fold(n)
	}
	if mut.Role != "" {
		set["role"] = mut.Role
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

// GetByID returns one member.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.LeadershipMember, error) {
	var m models.LeadershipMember
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.LeadershipMember{}, ErrNotFound
	}
	if err != nil {
		return models.LeadershipMember{}, err
	}
	return m, nil
}

// Delete removes one member. The resulting gap in order values is
// harmless.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListOrdered returns members sorted by order then _id (the display
// sequence). When visibleOnly is set, hidden members are excluded.
func (s *Store) ListOrdered(ctx context.Context, visibleOnly bool) ([]models.LeadershipMember, error) {
	filter := bson.M{}
	if visibleOnly {
		filter["visibility"] = models.VisibilityVisible
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LeadershipMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MoveUp swaps the member's order with its predecessor in the display
// sequence. MoveDown does the same with its successor. Both order
// updates commit in one transaction, so a crash can never leave the
// swap half-applied. The swap is its own inverse: applying it twice
// restores the original sequence.
func (s *Store) MoveUp(ctx context.Context, id primitive.ObjectID) error {
	return s.swapWithNeighbor(ctx, id, -1)
}

// MoveDown swaps the member's order with its successor.
func (s *Store) MoveDown(ctx context.Context, id primitive.ObjectID) error {
	return s.swapWithNeighbor(ctx, id, 1)
}

func (s *Store) swapWithNeighbor(ctx context.Context, id primitive.ObjectID, dir int) error {
	return txn.WithTransaction(ctx, s.client, s.log, func(tc context.Context) error {
		cur, err := s.GetByID(tc, id)
		if err != nil {
			return err
		}

		// Find the immediate neighbor in the sorted sequence. Order
		// values may have gaps, so "neighbor" means nearest order in
		// the move direction, not order±1.
		var neighborFilter bson.M
		var neighborSort bson.D
		if dir < 0 {
			neighborFilter = bson.M{"order": bson.M{"$lt": cur.Order}}
			neighborSort = bson.D{{Key: "order", Value: -1}, {Key: "_id", Value: -1}}
		} else {
			neighborFilter = bson.M{"order": bson.M{"$gt": cur.Order}}
			neighborSort = bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}
		}

		var neighbor models.LeadershipMember
		err = s.c.FindOne(tc, neighborFilter, options.FindOne().SetSort(neighborSort)).Decode(&neighbor)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAtBoundary
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if _, err := s.c.UpdateByID(tc, cur.ID, bson.M{"$set": bson.M{"order": neighbor.Order, "updated_at": now}}); err != nil {
			return err
		}
		_, err = s.c.UpdateByID(tc, neighbor.ID, bson.M{"$set": bson.M{"order": cur.Order, "updated_at": now}})
		return err
	})
}
