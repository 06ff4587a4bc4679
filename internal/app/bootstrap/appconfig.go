// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level, and request limits. AppConfig is where everything
// specific to this service lives: the MongoDB connection, API
// authentication, reconciliation defaults, and audit logging.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// API authentication. APITokenHash is a bcrypt hash of the bearer
	// token callers must present on /api routes. Blank disables auth
	// (development only).
	APITokenHash string

	// Reconciliation defaults, seeded into the settings document on
	// first startup.
	PreserveManualMembers bool

	// Audit logging mode: 'all' (db+log), 'db', 'log', or 'off'.
	AuditLogMode string

	// Per-client-IP rate limit on /api routes.
	APIRateLimit  int
	APIRateWindow time.Duration

	// Handler timeout overrides. Zero values keep the defaults.
	TimeoutShort time.Duration
	TimeoutLong  time.Duration
}
