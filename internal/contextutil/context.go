package contextutil

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const TraceIDKey contextKey = "traceID"

func TraceIDFromContext(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return "unknown-trace-id"
	}
	return traceID
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID returns the trace id already carried by the context, or
// attaches a freshly generated one.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return context.WithValue(ctx, TraceIDKey, traceID), traceID
}
