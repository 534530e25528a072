// internal/app/store/partners/partnerstore.go
package partnerstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound          = errors.New("partner inquiry not found")
	ErrInvalidTransition = errors.New("invalid partner status transition")
)

// allowedTransitions encodes the one-directional workflow:
// new -> contacted -> partnered | declined. Terminal states have no
// outgoing edges.
var allowedTransitions = map[string][]string{
	models.PartnerStatusNew:       {models.PartnerStatusContacted},
	models.PartnerStatusContacted: {models.PartnerStatusPartnered, models.PartnerStatusDeclined},
}

// CanTransition reports whether from -> to is a legal workflow step.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Store provides CRUD and the status workflow over partner inquiries.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("partners")}
}

// Create records a new inquiry with status "new".
func (s *Store) Create(ctx context.Context, p models.PartnerInquiry) (models.PartnerInquiry, error) {
	p.ID = primitive.NewObjectID()
	p.Status = models.PartnerStatusNew
	p.SubmittedAt = time.Now().UTC()
	p.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.PartnerInquiry{}, err
	}
	return p, nil
}

// GetByID returns one inquiry.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.PartnerInquiry, error) {
	var p models.PartnerInquiry
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PartnerInquiry{}, ErrNotFound
	}
	if err != nil {
		return models.PartnerInquiry{}, err
	}
	return p, nil
}

// List returns inquiries, optionally narrowed to one status, newest
// first.
func (s *Store) List(ctx context.Context, status string) ([]models.PartnerInquiry, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PartnerInquiry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transition advances the inquiry to the given status and returns the
// updated document. The current status is checked inside the update
// filter, so a concurrent transition loses cleanly with
// ErrInvalidTransition instead of silently overwriting. Only the
// database mutation happens here; any follow-up action (like opening an
// email draft) is the caller's separate concern.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, to string) (models.PartnerInquiry, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.PartnerInquiry{}, err
	}
	if !CanTransition(cur.Status, to) {
		return models.PartnerInquiry{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, to)
	}

	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": cur.Status},
		bson.M{"$set": bson.M{"status": to, "updated_at": now}})
	if err != nil {
		return models.PartnerInquiry{}, err
	}
	if res.MatchedCount == 0 {
		return models.PartnerInquiry{}, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	}

	cur.Status = to
	cur.UpdatedAt = &now
	return cur, nil
}

// Delete removes one inquiry.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ComposeIntent builds a mailto URL pre-filled for contacting the
// inquiry's organization. It is a pure helper with no side effects:
// callers decide whether to surface it (the contacted transition does,
// admins can also request it on its own).
func ComposeIntent(p models.PartnerInquiry) string {
	subject := fmt.Sprintf("Partnership with Al-Manar Education Foundation - %s", p.Organization)
	body := fmt.Sprintf("Dear %s,\n\nThank you for reaching out to the Al-Manar Education Foundation about partnering with us.\n",
		strings.TrimSpace(p.ContactPerson))

	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	// url.Values encodes spaces as '+', which mail clients do not
	// decode; mailto requires %20.
	return "mailto:" + p.Email + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
