// Package sqlexpr parses SQL scalar expressions, the arithmetic and literal
// expressions found in predicates, select lists and parameter markers, into a
// syntax tree for later translation.
//
// The grammar has four precedence levels:
//
//	Expression := Term { ('+' | '-') Term }
//	Term       := Factor { ('*' | '/') Factor }
//	Factor     := [ '+' | '-' ] Primary
//	Primary    := column | '?' | "string" | number | '(' Expression ')'
//
// String literals are double-quoted; a doubled quote inside stands for one quote.
// Numbers are unsigned; a sign is part of the Factor. Column references are
// recognised by a ColumnReferenceParser, by default [table '.'] column.
//
// Basic usage:
//
//	expr, err := sqlexpr.Parse(`price * (1 - ?) + "fee"`)
//	if err != nil {
//	    var perr *sqlexpr.ParseError
//	    if errors.As(err, &perr) {
//	        log.Printf("syntax error at %d: %v", perr.Pos, perr.Err)
//	    }
//	    return err
//	}
//
// A statement grammar that embeds expressions uses ParseAt, which starts at a given
// position and reports where the expression ended.
package sqlexpr

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nlstn/go-sqlexpr/ast"
	"github.com/nlstn/go-sqlexpr/internal/grammar"
	"github.com/nlstn/go-sqlexpr/internal/observability"
)

// DefaultMaxDepth is the default limit on parenthesis nesting.
const DefaultMaxDepth = grammar.DefaultMaxDepth

// Parser parses expressions with a fixed configuration. A Parser holds no per-parse
// state and is safe for concurrent use.
type Parser struct {
	logger   *slog.Logger
	columns  ColumnReferenceParser
	grouping bool
	maxDepth int
	obs      *observability.Config
}

type config struct {
	logger   *slog.Logger
	columns  ColumnReferenceParser
	grouping bool
	maxDepth int
	obsOpts  []observability.Option
}

// Option configures a Parser.
type Option func(*config)

// WithLogger sets the logger used for parse diagnostics. A nil logger selects
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithColumnReferenceParser replaces the default [table '.'] column recognizer.
func WithColumnReferenceParser(p ColumnReferenceParser) Option {
	return func(c *config) {
		c.columns = p
	}
}

// WithGrouping enables or disables parenthesized sub-expressions. Grouping is
// enabled by default.
func WithGrouping(enabled bool) Option {
	return func(c *config) {
		c.grouping = enabled
	}
}

// WithMaxDepth limits how deeply parentheses may nest. Values below 1 select
// DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithTracerProvider enables OpenTelemetry tracing of parse calls.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.obsOpts = append(c.obsOpts, observability.WithTracerProvider(tp))
	}
}

// WithMeterProvider enables OpenTelemetry parse metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.obsOpts = append(c.obsOpts, observability.WithMeterProvider(mp))
	}
}

// WithServiceName sets the service name reported by the tracer.
func WithServiceName(name string) Option {
	return func(c *config) {
		c.obsOpts = append(c.obsOpts, observability.WithServiceName(name))
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	cfg := config{grouping: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.maxDepth < 1 {
		cfg.maxDepth = DefaultMaxDepth
	}

	obs := observability.NewConfig(cfg.obsOpts...)
	obs.Initialize()

	return &Parser{
		logger:   cfg.logger,
		columns:  cfg.columns,
		grouping: cfg.grouping,
		maxDepth: cfg.maxDepth,
		obs:      obs,
	}
}

// Parse parses text, which must consist of exactly one expression optionally
// surrounded by whitespace.
func (p *Parser) Parse(ctx context.Context, text string) (*Expression, error) {
	expr, _, err := p.parse(ctx, text, 0, true)
	return expr, err
}

// ParseAt parses one expression starting at byte offset pos of text and returns it
// together with the offset just after its last token, so an enclosing grammar can
// continue from there. Text after the expression is left alone. On failure the
// returned offset is pos.
func (p *Parser) ParseAt(ctx context.Context, text string, pos int) (*Expression, int, error) {
	return p.parse(ctx, text, pos, false)
}

func (p *Parser) parse(ctx context.Context, text string, pos int, complete bool) (*Expression, int, error) {
	start := time.Now()
	tracer := p.obs.Tracer()
	ctx, span := tracer.StartParse(ctx, len(text), pos)
	defer span.End()

	gp := grammar.NewParser(text, pos, grammar.Config{
		Columns:  p.columns,
		Grouping: p.grouping,
		MaxDepth: p.maxDepth,
	})

	var (
		expr *ast.Expression
		end  int
		err  error
	)
	if complete {
		end = len(text)
		expr, err = gp.ParseComplete()
	} else {
		expr, end, err = gp.ParseExpression()
	}

	metrics := p.obs.Metrics()
	if err != nil {
		kind := ErrorKind(err)
		errPos := pos
		var perr *ParseError
		if errors.As(err, &perr) {
			errPos = perr.Pos
		}
		tracer.RecordError(span, err, kind, errPos)
		metrics.RecordParse(ctx, false, time.Since(start))
		metrics.RecordError(ctx, kind)
		observability.LoggerWithTrace(ctx, p.logger).Debug("Expression parse failed",
			"pos", errPos, "kind", kind, "error", err)
		return nil, pos, err
	}

	if p.obs.IsEnabled() {
		tracer.RecordResult(span, end, expr.Len(), len(ast.Parameters(expr)))
	}
	metrics.RecordParse(ctx, true, time.Since(start))
	return expr, end, nil
}

var defaultParser = New()

// Parse parses text with the default configuration.
func Parse(text string) (*Expression, error) {
	return defaultParser.Parse(context.Background(), text)
}

// ParseAt parses one expression at byte offset pos of text with the default
// configuration. See (*Parser).ParseAt.
func ParseAt(text string, pos int) (*Expression, int, error) {
	return defaultParser.ParseAt(context.Background(), text, pos)
}

// Parameters returns the dynamic parameters of expr in ordinal order.
func Parameters(expr *Expression) []*DynamicParameter {
	return ast.Parameters(expr)
}

// Columns returns the column references of expr in the order they appear.
func Columns(expr *Expression) []*ColumnReference {
	return ast.Columns(expr)
}
