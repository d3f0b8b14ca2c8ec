// Package consts defines client-wide constants: header names, context keys
// and the character sets used for generated identifiers.
//
// Header names are sent on every remote call by the net/client transport:
//
//	consts.AuthorizationKey // "Authorization"
//	consts.TraceKey         // "X-Trace-ID"
//	consts.RequestIDKey     // "X-Request-ID"
//
// Context keys are used through ctxutil:
//
//	ctx = ctxutil.SetValue(ctx, consts.UserKey, "7")
package consts
