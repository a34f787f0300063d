// Package grammar implements the SQL scalar expression grammar as a recursive-descent
// parser over the literal lexer and a pluggable column reference parser.
package grammar

import (
	"github.com/nlstn/go-sqlexpr/ast"
	"github.com/nlstn/go-sqlexpr/internal/columnref"
	"github.com/nlstn/go-sqlexpr/internal/lexer"
)

// DefaultMaxDepth bounds the nesting of parenthesized sub-expressions when
// Config.MaxDepth is not set.
const DefaultMaxDepth = 64

// Config controls which constructs the parser accepts.
type Config struct {
	// Columns recognises column references. Nil means columnref.Default.
	Columns columnref.Parser
	// Grouping enables parenthesized sub-expressions.
	Grouping bool
	// MaxDepth is the maximum parenthesis nesting; zero means DefaultMaxDepth.
	MaxDepth int
}

// Parser parses one expression. It is not safe for concurrent use; create one per
// parse.
type Parser struct {
	cur      *lexer.Cursor
	columns  columnref.Parser
	grouping bool
	maxDepth int

	depth  int
	params int
}

// NewParser creates a parser over input starting at pos.
func NewParser(input string, pos int, cfg Config) *Parser {
	p := &Parser{
		cur:      lexer.NewCursor(input, pos),
		columns:  cfg.Columns,
		grouping: cfg.Grouping,
		maxDepth: cfg.MaxDepth,
	}
	if p.columns == nil {
		p.columns = columnref.Default{}
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	return p
}

// ParseExpression parses an expression at the parser's start position and returns it
// with the position just after its last token. Trailing whitespace is not consumed.
// On failure the error is a *lexer.ParseError.
func (p *Parser) ParseExpression() (*ast.Expression, int, error) {
	start := p.cur.Pos()
	if start < 0 || start > len(p.cur.Input()) {
		return nil, start, &lexer.ParseError{Pos: start, Err: lexer.ErrInvalidPosition}
	}
	if !p.cur.Remaining() {
		return nil, start, p.cur.ErrorAt(len(p.cur.Input()), lexer.ErrEmptyInput)
	}

	expr, err := p.parseExpression()
	if err != nil {
		p.cur.Reset(start)
		return nil, start, err
	}
	return expr, p.cur.Pos(), nil
}

// ParseComplete parses an expression that must span the whole input after the start
// position, apart from surrounding whitespace.
func (p *Parser) ParseComplete() (*ast.Expression, error) {
	expr, _, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Remaining() {
		p.cur.SkipSpace()
		return nil, p.cur.ErrorAt(p.cur.Pos(), lexer.ErrUnexpectedInput)
	}
	return expr, nil
}

// skipToOperator skips whitespace and returns the next byte if it is one of ops.
// When it is not, the cursor is left where it was and 0 is returned.
func (p *Parser) skipToOperator(ops string) byte {
	mark := p.cur.Pos()
	p.cur.SkipSpace()
	ch := p.cur.Peek()
	for i := 0; i < len(ops); i++ {
		if ch == ops[i] {
			p.cur.Advance(1)
			return ch
		}
	}
	p.cur.Reset(mark)
	return 0
}
