package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a record for filtering (e.g. cache_write_failed).
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step when something went wrong.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldRequestID is the correlation identifier of a single network request.
	FieldRequestID = "request_id"
	// FieldShowID is the catalog identifier of the show being browsed.
	FieldShowID = "show_id"
	// FieldEpisodeCode is the canonical SxxEyy episode identifier.
	FieldEpisodeCode = "episode_code"
	// FieldCacheKey is the request URL used as cache key.
	FieldCacheKey = "cache_key"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	showIDKey    contextKey = "show_id"
)

// WithRequestID annotates context with a request correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// WithShowID annotates context with the show being loaded.
func WithShowID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, showIDKey, id)
}

// ShowIDFromContext returns the show identifier if present.
func ShowIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(showIDKey).(int64)
	return id, ok
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRequestID, id))
	}
	if id, ok := ShowIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldShowID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
