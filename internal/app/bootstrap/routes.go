// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	groupsfeature "github.com/dalemusser/cohortsync/internal/app/features/groups"
	healthfeature "github.com/dalemusser/cohortsync/internal/app/features/health"
	"github.com/dalemusser/cohortsync/internal/app/store/audit"
	"github.com/dalemusser/cohortsync/internal/app/system/apiauth"
	"github.com/dalemusser/cohortsync/internal/app/system/auditlog"
	"github.com/dalemusser/cohortsync/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. CohortSync mounts the health
// endpoint unauthenticated and puts the groups API behind the bearer
// token middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	auditLogger := auditlog.New(
		audit.New(deps.MongoDatabase),
		logger,
		auditlog.Config{Mode: appCfg.AuditLogMode},
	)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// JSON API, bearer-token protected and rate limited per client IP
	limiter := ratelimit.New(appCfg.APIRateLimit, appCfg.APIRateWindow)
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, auditLogger, logger)
	r.Route("/api", func(api chi.Router) {
		api.Use(limiter.Middleware(logger))
		api.Use(apiauth.Middleware(appCfg.APITokenHash, logger))
		api.Mount("/groups", groupsfeature.Routes(groupsHandler))
	})

	return r, nil
}
