// internal/app/store/donations/donationstore.go
package donationstore

import (
	"context"
	"errors"
	"time"

	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound           = errors.New("donation not found")
	ErrDuplicateReference = errors.New("a donation with this reference already exists")
)

// Store provides CRUD over the donations collection. The reference
// field carries a unique index (see bootstrap schema setup), which is
// what makes MarkSuccess idempotent under concurrent verification.
type Store struct {
	c *mongodrv.Collection
}

func New(db *mongodrv.Database) *Store {
	return &Store{c: db.Collection("donations")}
}

// Create records a pending donation keyed by its gateway reference.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	d.ID = primitive.NewObjectID()
	d.Status = models.DonationStatusPending
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = nil
	d.PaidAt = nil

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if mongo.IsDup(err) {
			return models.Donation{}, ErrDuplicateReference
		}
		return models.Donation{}, err
	}
	return d, nil
}

// GetByReference returns the donation for a gateway reference.
func (s *Store) GetByReference(ctx context.Context, reference string) (models.Donation, error) {
	var d models.Donation
	err := s.c.FindOne(ctx, bson.M{"reference": reference}).Decode(&d)
	if errors.Is(err, mongodrv.ErrNoDocuments) {
		return models.Donation{}, ErrNotFound
	}
	if err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// MarkSuccess transitions the donation for reference from pending to
// success, recording the gateway's settlement details. The pending
// status is part of the update filter, so repeated verification of the
// same reference applies the transition exactly once; later calls see
// alreadyDone=true and change nothing.
func (s *Store) MarkSuccess(ctx context.Context, reference string, amount int64, currency, channel string, paidAt time.Time) (alreadyDone bool, err error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"reference": reference, "status": models.DonationStatusPending},
		bson.M{"$set": bson.M{
			"status":     models.DonationStatusSuccess,
			"amount":     amount,
			"currency":   currency,
			"channel":    channel,
			"paid_at":    paidAt.UTC(),
			"updated_at": now,
		}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return false, nil
	}

	// No pending doc matched: either the donation was already verified
	// or the reference is unknown.
	n, err := s.c.CountDocuments(ctx, bson.M{"reference": reference}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotFound
	}
	return true, nil
}

// List returns donations, optionally narrowed to one status, newest
// first.
func (s *Store) List(ctx context.Context, status string) ([]models.Donation, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Donation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
