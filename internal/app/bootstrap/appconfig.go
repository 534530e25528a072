// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to ManarHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies
	SessionDomain string // cookie domain (blank means current host)

	// File storage configuration ("local" or "s3")
	StorageType      string
	StorageLocalPath string
	StorageLocalURL  string

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// BaseURL is where this API is served (OAuth callbacks).
	// DashboardURL is where the admin SPA lives (post-login redirects).
	BaseURL      string
	DashboardURL string

	// Paystack payment verification
	PaystackSecretKey string
	PaystackBaseURL   string

	// Audit logging gates ("all", "db", "log", or "off")
	AuditLogAuth  string
	AuditLogAdmin string

	// Google OAuth for dashboard sign-in
	GoogleClientID     string
	GoogleClientSecret string

	// Initial admin account, created on startup if the users collection
	// is empty.
	InitialAdminEmail    string
	InitialAdminPassword string
}
