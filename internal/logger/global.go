package logger

import (
	"log/slog"
	"time"
)

// LogQuery logs database operations
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Query failed", append(attrs,
			slog.String("query", query),
			slog.Any("error", err),
		)...)
	} else {
		slog.Debug("Query executed", append(attrs,
			slog.String("query", query),
		)...)
	}
}

// LogReconcile logs the outcome of one reconciliation pass
func LogReconcile(criteriaID, cardID string, processed, updated int, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "recon"),
		slog.String("criteria_id", criteriaID),
		slog.String("card_id", cardID),
		slog.Int("processed", processed),
		slog.Int("updated", updated),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Reconciliation failed", append(attrs,
			slog.Any("error", err),
			slog.String("status", "failed"),
		)...)
		return
	}
	slog.Info("Reconciliation completed", append(attrs, slog.String("status", "success"))...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
