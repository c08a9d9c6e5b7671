package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for cadence.
const TracerName = "github.com/teemow/cadence"

// Span attribute keys.
const (
	// SpanAttrOperation is the calendar operation type attribute.
	SpanAttrOperation = "calendar.operation"

	// SpanAttrCalendarID is the calendar being queried.
	SpanAttrCalendarID = "calendar.id"

	// SpanAttrEventCount is the number of events returned by a search.
	SpanAttrEventCount = "calendar.event_count"

	// SpanAttrDryRun marks a recommendation run that books nothing.
	SpanAttrDryRun = "oneonone.dry_run"
)

// StartSpan starts a new span with the given name and attributes.
// The caller is responsible for ending the span with defer span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartCalendarSpan starts a client span for a calendar API operation.
// The span is named calendar.<operation>.
func StartCalendarSpan(ctx context.Context, operation, calendarID string) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, "calendar."+operation,
		trace.WithAttributes(
			attribute.String(SpanAttrOperation, operation),
			attribute.String(SpanAttrCalendarID, calendarID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// RecordSpanError records an error on the span and sets the status to error.
func RecordSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the trace ID from the current span in context.
// Returns empty string if no valid span is present.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
