// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CohortSync.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, api_token_hash, etc.
//   - Environment variables: COHORTSYNC_MONGO_URI, COHORTSYNC_API_TOKEN_HASH, etc.
//   - Command-line flags: --mongo_uri, --api_token_hash, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "cohortsync", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// API authentication
	{Name: "api_token_hash", Default: "", Desc: "bcrypt hash of the API bearer token (blank disables auth)"},

	// Reconciliation defaults
	{Name: "preserve_manual_members", Default: true, Desc: "Keep manually assigned members during reconciliation (seeded on first startup)"},

	// Audit logging settings
	{Name: "audit_log_mode", Default: "all", Desc: "Audit event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// API rate limiting
	{Name: "api_rate_limit", Default: 120, Desc: "Max API requests per client IP per window"},
	{Name: "api_rate_window", Default: "1m", Desc: "Rate limit window (e.g., 1m, 30s)"},

	// Handler timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document operations (e.g., 5s)"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for full reconciliation passes (e.g., 30s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, COHORTSYNC_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COHORTSYNC", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		APITokenHash: appValues.String("api_token_hash"),

		PreserveManualMembers: appValues.Bool("preserve_manual_members"),

		AuditLogMode: appValues.String("audit_log_mode"),

		APIRateLimit:  appValues.Int("api_rate_limit"),
		APIRateWindow: appValues.Duration("api_rate_window", time.Minute),

		TimeoutShort: appValues.Duration("timeout_short", 0),
		TimeoutLong:  appValues.Duration("timeout_long", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked up front so a bad connection string fails
// fast instead of at first use.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.AuditLogMode {
	case "all", "db", "log", "off":
	default:
		return fmt.Errorf("invalid audit_log_mode %q (want 'all', 'db', 'log', or 'off')", appCfg.AuditLogMode)
	}

	// Warn loudly when auth is disabled outside dev.
	if appCfg.APITokenHash == "" && coreCfg.Env == "prod" {
		logger.Warn("api_token_hash is blank: the API will accept unauthenticated requests")
	}

	return nil
}
