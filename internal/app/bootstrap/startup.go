// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/almanarfoundation/manarhub/internal/app/store/oauthstate"
	userstore "github.com/almanarfoundation/manarhub/internal/app/store/users"
	"github.com/almanarfoundation/manarhub/internal/app/system/tasks"
	"github.com/almanarfoundation/manarhub/internal/app/system/timeouts"
	"github.com/almanarfoundation/manarhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// jobRunner holds the background job runner between the Startup and
// Shutdown hooks.
var jobRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.ConfigureFromEnv()

	if appCfg.InitialAdminEmail != "" {
		if err := ensureInitialAdmin(ctx, deps, appCfg.InitialAdminEmail, appCfg.InitialAdminPassword, logger); err != nil {
			return err
		}
	}

	jobRunner = tasks.NewRunner(logger,
		tasks.OAuthStateCleanupJob(oauthstate.New(deps.MongoDatabase), logger))
	jobRunner.Start()

	return nil
}

// ensureInitialAdmin creates the first admin account when the users
// collection is empty. A fresh deployment would otherwise have no way
// to sign in. Existing deployments are left untouched.
func ensureInitialAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	n, err := deps.MongoDatabase.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	if password == "" {
		return fmt.Errorf("initial_admin_password is required to create the first admin account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("hash initial admin password: %w", err)
	}

	users := userstore.New(deps.MongoDatabase)
	created, err := users.Create(ctx, models.User{
		FullName:     "Administrator",
		Email:        email,
		Role:         "admin",
		AuthMethod:   "password",
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("create initial admin: %w", err)
	}

	logger.Info("created initial admin account",
		zap.String("email", created.Email),
		zap.String("user_id", created.ID.Hex()))
	return nil
}
