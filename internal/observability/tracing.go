package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with parse-specific span creation methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartParse starts a span for one parse call.
func (t *Tracer) StartParse(ctx context.Context, inputLen, startPos int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "sqlexpr.parse", trace.WithAttributes(
		InputLengthAttr(inputLen),
		StartPosAttr(startPos),
	))
}

// RecordResult adds the shape of a successfully parsed expression to the span.
func (t *Tracer) RecordResult(span trace.Span, endPos, terms, params int) {
	span.SetAttributes(
		EndPosAttr(endPos),
		TermCountAttr(terms),
		ParamCountAttr(params),
		OutcomeAttr(OutcomeSuccess),
	)
}

// RecordError records a syntax error on the span.
func (t *Tracer) RecordError(span trace.Span, err error, kind string, pos int) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(
		ErrorKindAttr(kind),
		ErrorPosAttr(pos),
		OutcomeAttr(OutcomeFailure),
	)
	span.SetStatus(codes.Error, err.Error())
}

// LoggerWithTrace returns a logger enriched with trace context.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return logger
	}
	return logger.With(
		slog.String(LogFieldTraceID, span.SpanContext().TraceID().String()),
		slog.String(LogFieldSpanID, span.SpanContext().SpanID().String()),
	)
}
