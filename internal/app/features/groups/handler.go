// internal/app/features/groups/handler.go
package groups

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/cohortsync/internal/app/system/auditlog"
)

// Handler is the shared dependency container for the groups feature.
// It holds references to the Mongo database, the audit logger, and the
// zap logger so the individual handlers (create, view, delete, sync)
// can all share the same core dependencies.
type Handler struct {
	DB    *mongo.Database
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a new groups Handler. It is typically called
// from the bootstrap BuildHandler function, where the application's
// DB and loggers are already initialized.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Audit: audit,
		Log:   logger,
	}
}
