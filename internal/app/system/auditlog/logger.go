// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"

	"github.com/dalemusser/cohortsync/internal/app/store/audit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Mode controls where events go.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Mode string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}
	if event.GroupID != 0 {
		fields = append(fields, zap.Int64("group_id", event.GroupID))
	}
	if event.UserID != 0 {
		fields = append(fields, zap.Int64("user_id", event.UserID))
	}
	if event.SyncRunID != "" {
		fields = append(fields, zap.String("sync_run_id", event.SyncRunID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	if l.config.Mode == "off" {
		return
	}
	if l.config.Mode == "all" || l.config.Mode == "log" {
		l.logToZap(event)
	}
	if l.config.Mode == "all" || l.config.Mode == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// GroupCreated logs a group lifecycle create.
func (l *Logger) GroupCreated(ctx context.Context, groupID, courseID int64, syncRunID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryLifecycle,
		EventType: audit.EventGroupCreated,
		GroupID:   groupID,
		CourseID:  courseID,
		SyncRunID: syncRunID,
		Success:   true,
	})
}

// GroupUpdated logs a group lifecycle update.
func (l *Logger) GroupUpdated(ctx context.Context, groupID, courseID int64, syncRunID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryLifecycle,
		EventType: audit.EventGroupUpdated,
		GroupID:   groupID,
		CourseID:  courseID,
		SyncRunID: syncRunID,
		Success:   true,
	})
}

// GroupDeleted logs a group lifecycle delete.
func (l *Logger) GroupDeleted(ctx context.Context, groupID, courseID int64, syncRunID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryLifecycle,
		EventType: audit.EventGroupDeleted,
		GroupID:   groupID,
		CourseID:  courseID,
		SyncRunID: syncRunID,
		Success:   true,
	})
}

// MemberAdded logs one reconciliation add.
func (l *Logger) MemberAdded(ctx context.Context, groupID, userID int64, syncRunID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberAdded,
		GroupID:   groupID,
		UserID:    userID,
		SyncRunID: syncRunID,
		Success:   true,
	})
}

// MemberRemoved logs one reconciliation remove.
func (l *Logger) MemberRemoved(ctx context.Context, groupID, userID int64, syncRunID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberRemoved,
		GroupID:   groupID,
		UserID:    userID,
		SyncRunID: syncRunID,
		Success:   true,
	})
}

// MemberPreserved logs a removal that was skipped because the member
// was manually assigned.
func (l *Logger) MemberPreserved(ctx context.Context, groupID, userID int64, syncRunID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryMembership,
		EventType: audit.EventMemberPreserved,
		GroupID:   groupID,
		UserID:    userID,
		SyncRunID: syncRunID,
		Success:   true,
		Details: map[string]string{
			"reason": "manual assignment preserved",
		},
	})
}
