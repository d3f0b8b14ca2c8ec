package logger

import (
	"context"

	"github.com/ncobase/taskdesk/ctxutil"
)

const (
	traceKey     = ctxutil.TraceIDKey
	requestIDKey = "request_id"
	userKey      = "user"
)

// getTraceID gets a trace ID from the context.
func getTraceID(ctx context.Context) string {
	return ctxutil.GetTraceID(ctx)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	return ctxutil.EnsureTraceID(ctx)
}
