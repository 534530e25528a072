package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGroup inserts a grouping document (series, playlist, show,
// collection, or album) into the given collection.
func (f *Fixtures) CreateGroup(ctx context.Context, coll, title, category string) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Category:  category,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	if _, err := f.db.Collection(coll).InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateContentItem inserts a content document into the given
// collection, optionally attached to a group.
func (f *Fixtures) CreateContentItem(ctx context.Context, coll, title, category string, group *models.Group) models.ContentItem {
	f.t.Helper()

	now := time.Now().UTC()
	item := models.ContentItem{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Category:  category,
		Status:    "published",
		CreatedAt: now,
		UpdatedAt: &now,
	}
	if group != nil {
		item.GroupID = &group.ID
		item.GroupTitle = group.Title
	}

	if _, err := f.db.Collection(coll).InsertOne(ctx, item); err != nil {
		f.t.Fatalf("failed to create test content item: %v", err)
	}
	return item
}

// CreateLeadershipMember inserts a leadership member with an explicit
// display order.
func (f *Fixtures) CreateLeadershipMember(ctx context.Context, name, role string, order int) models.LeadershipMember {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.LeadershipMember{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		Role:       role,
		Order:      order,
		Visibility: models.VisibilityVisible,
		CreatedAt:  now,
		UpdatedAt:  &now,
	}

	if _, err := f.db.Collection("leadership_members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test leadership member: %v", err)
	}
	return m
}

// CreatePartnerInquiry inserts a partner inquiry with the given status.
func (f *Fixtures) CreatePartnerInquiry(ctx context.Context, org, status string) models.PartnerInquiry {
	f.t.Helper()

	p := models.PartnerInquiry{
		ID:            primitive.NewObjectID(),
		Organization:  org,
		ContactPerson: "Test Contact",
		Email:         "partner@example.com",
		Status:        status,
		SubmittedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("partners").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test partner inquiry: %v", err)
	}
	return p
}

// CreateDonation inserts a donation with the given reference and status.
func (f *Fixtures) CreateDonation(ctx context.Context, reference, status string) models.Donation {
	f.t.Helper()

	d := models.Donation{
		ID:        primitive.NewObjectID(),
		Reference: reference,
		Status:    status,
		Currency:  "NGN",
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("donations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test donation: %v", err)
	}
	return d
}
