// Package observability provides OpenTelemetry-based instrumentation for expression parsing.
//
// It supports tracing of parse calls, parse metrics, and trace-aware structured logging.
//
// All observability features are opt-in. When not configured, no-op implementations
// are used.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/nlstn/go-sqlexpr"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/nlstn/go-sqlexpr"
)

// Semantic attribute keys.
const (
	AttrInputLength = "sqlexpr.input.length"
	AttrStartPos    = "sqlexpr.start_pos"
	AttrEndPos      = "sqlexpr.end_pos"
	AttrTermCount   = "sqlexpr.term.count"
	AttrParamCount  = "sqlexpr.param.count"
	AttrOutcome     = "sqlexpr.outcome"
	AttrErrorKind   = "sqlexpr.error.kind"
	AttrErrorPos    = "sqlexpr.error.pos"
)

// Values of the sqlexpr.outcome attribute.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Log field keys for structured logging with trace context.
const (
	LogFieldTraceID = "trace_id"
	LogFieldSpanID  = "span_id"
)

// InputLengthAttr returns the attribute for the length of the parsed text.
func InputLengthAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrInputLength, n)
}

// StartPosAttr returns the attribute for the parse start position.
func StartPosAttr(pos int) attribute.KeyValue {
	return attribute.Int(AttrStartPos, pos)
}

// EndPosAttr returns the attribute for the position after the parsed expression.
func EndPosAttr(pos int) attribute.KeyValue {
	return attribute.Int(AttrEndPos, pos)
}

// TermCountAttr returns the attribute for the number of top-level terms.
func TermCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrTermCount, n)
}

// ParamCountAttr returns the attribute for the number of dynamic parameters.
func ParamCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrParamCount, n)
}

// OutcomeAttr returns the attribute for the parse outcome.
func OutcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String(AttrOutcome, outcome)
}

// ErrorKindAttr returns the attribute for the kind of syntax error.
func ErrorKindAttr(kind string) attribute.KeyValue {
	return attribute.String(AttrErrorKind, kind)
}

// ErrorPosAttr returns the attribute for the position of a syntax error.
func ErrorPosAttr(pos int) attribute.KeyValue {
	return attribute.Int(AttrErrorPos, pos)
}
