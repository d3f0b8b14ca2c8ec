// Package ctxutil carries per-operation values through context.Context:
// the trace id attached to log lines and remote calls, the request id of a
// single call, and the signed in user.
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	ctx = ctxutil.SetRequestID(ctx, ctxutil.NewRequestID())
package ctxutil
