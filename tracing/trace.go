package tracing

import (
	"context"

	"github.com/ncobase/taskdesk/ctxutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ncobase/taskdesk"

// StartSpan starts a span named op and makes sure the context carries a
// trace id for log correlation. Without an installed provider the global
// no-op tracer is used.
func StartSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, traceID := ctxutil.EnsureTraceID(ctx)
	attrs = append(attrs, attribute.String("taskdesk.trace_id", traceID))
	return otel.Tracer(instrumentationName).Start(ctx, op, trace.WithAttributes(attrs...))
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
