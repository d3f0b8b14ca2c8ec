package ctxutil

import (
	"context"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/ncobase/taskdesk/consts"
)

type ctxKey string

const (
	TraceIDKey   = "trace_id"
	requestIDKey = "request_id"
	userIDKey    = consts.UserKey
	usernameKey  = consts.UsernameKey
)

// GetValue retrieves a value from the context.
func GetValue(ctx context.Context, key string) any {
	return ctx.Value(ctxKey(key))
}

// SetValue sets a value to the context.
func SetValue(ctx context.Context, key string, val any) context.Context {
	return context.WithValue(ctx, ctxKey(key), val)
}

func getString(ctx context.Context, key string) string {
	if v, ok := GetValue(ctx, key).(string); ok {
		return v
	}
	return ""
}

// GetTraceID gets trace id from context.Context.
func GetTraceID(ctx context.Context) string { return getString(ctx, TraceIDKey) }

// SetTraceID sets trace id to context.Context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// NewRequestID generates an id for a single remote call.
func NewRequestID() string {
	id, err := gonanoid.Generate(consts.RequestIDAlphabet, consts.RequestIDSize)
	if err != nil {
		return uuid.NewString()
	}
	return id
}

// GetRequestID gets request id from context.Context.
func GetRequestID(ctx context.Context) string { return getString(ctx, requestIDKey) }

// SetRequestID sets request id to context.Context.
func SetRequestID(ctx context.Context, id string) context.Context {
	return SetValue(ctx, requestIDKey, id)
}

// SetUserID sets user id to context.Context.
func SetUserID(ctx context.Context, uid string) context.Context {
	return SetValue(ctx, userIDKey, uid)
}

// GetUserID gets user id from context.Context.
func GetUserID(ctx context.Context) string { return getString(ctx, userIDKey) }

// SetUsername sets username to context.Context.
func SetUsername(ctx context.Context, name string) context.Context {
	return SetValue(ctx, usernameKey, name)
}

// GetUsername gets username from context.Context.
func GetUsername(ctx context.Context) string { return getString(ctx, usernameKey) }
