package observability

import (
	"context"
	"log/slog"
)

var logger = slog.Default()

// SetLogger routes observability logging through l. The server installs the
// context-aware request logger here at start-up.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Log returns the logger used by services and repositories.
func Log() *slog.Logger {
	return logger
}

// RepoLogger provides structured logging for repository mutations.
type RepoLogger struct {
	tableName string
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName}
}

func (l *RepoLogger) log(ctx context.Context, level slog.Level, msg, operation string, attrs []slog.Attr) {
	all := append([]slog.Attr{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
	}, attrs...)
	logger.LogAttrs(ctx, level, msg, all...)
}

// LogCreate logs a repository create operation.
func (l *RepoLogger) LogCreate(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, "repository create", "create", attrs)
}

// LogUpdate logs a repository update operation.
func (l *RepoLogger) LogUpdate(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, "repository update", "update", attrs)
}

// LogDelete logs a repository delete operation.
func (l *RepoLogger) LogDelete(ctx context.Context, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelInfo, "repository delete", "delete", attrs)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	l.log(ctx, slog.LevelError, "repository error", operation, []slog.Attr{slog.String("error", err.Error())})
}
