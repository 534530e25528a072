package bootstrap

import (
	"testing"

	"github.com/almanarfoundation/manarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureInitialAdmin_CreatesFirstAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	err := ensureInitialAdmin(ctx, deps, "admin@almanar.org", "s3cret-pass", testLogger())
	if err != nil {
		t.Fatalf("ensureInitialAdmin failed: %v", err)
	}

	var doc bson.M
	err = db.Collection("users").FindOne(ctx, bson.M{"email": "admin@almanar.org"}).Decode(&doc)
	if err != nil {
		t.Fatalf("failed to find created admin: %v", err)
	}

	if doc["role"] != "admin" {
		t.Errorf("expected role 'admin', got %q", doc["role"])
	}
	if doc["status"] != "active" {
		t.Errorf("expected status 'active', got %q", doc["status"])
	}
	if doc["auth_method"] != "password" {
		t.Errorf("expected auth_method 'password', got %q", doc["auth_method"])
	}

	hash, _ := doc["password_hash"].(string)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not match the configured password: %v", err)
	}
}

func TestEnsureInitialAdmin_SkipsWhenUsersExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"email": "existing@almanar.org",
		"role":  "editor",
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	deps := DBDeps{MongoDatabase: db}

	err = ensureInitialAdmin(ctx, deps, "admin@almanar.org", "s3cret-pass", testLogger())
	if err != nil {
		t.Fatalf("ensureInitialAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "admin@almanar.org"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Error("expected no admin to be created when users already exist")
	}
}

func TestEnsureInitialAdmin_RequiresPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	err := ensureInitialAdmin(ctx, deps, "admin@almanar.org", "", testLogger())
	if err == nil {
		t.Fatal("expected an error when no password is configured")
	}
}
