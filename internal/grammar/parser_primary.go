package grammar

import (
	"errors"
	"fmt"

	"github.com/nlstn/go-sqlexpr/ast"
	"github.com/nlstn/go-sqlexpr/internal/lexer"
)

// parsePrimary tries, in order: column reference, literal (placeholder, string,
// number) and parenthesized expression. An alternative that does not apply returns
// lexer.ErrNoMatch without consuming input; any other error ends the parse.
func (p *Parser) parsePrimary() (ast.Primary, error) {
	pos := p.cur.Pos()

	col, err := p.parseColumnReference(pos)
	if err == nil {
		return col, nil
	}
	if !errors.Is(err, lexer.ErrNoMatch) {
		return nil, err
	}

	// The literal forms start with '"', '?' or a digit, so the order the lexer
	// tries them in cannot change the result.
	lit, err := p.cur.ReadLiteral()
	if err == nil {
		if param, ok := lit.(*ast.DynamicParameter); ok {
			p.params++
			param.Ordinal = p.params
		}
		return lit, nil
	}
	if !errors.Is(err, lexer.ErrNoMatch) {
		return nil, err
	}

	if p.grouping && p.cur.Peek() == '(' {
		return p.parseGroupedExpression()
	}

	return nil, p.cur.ErrorAt(pos, lexer.ErrExpectedOperand)
}

// parseColumnReference delegates to the configured column parser and checks that it
// kept its side of the contract.
func (p *Parser) parseColumnReference(pos int) (*ast.ColumnReference, error) {
	col, end, err := p.columns.ParseColumnReference(p.cur.Input(), pos)
	if err != nil {
		if errors.Is(err, lexer.ErrNoMatch) {
			return nil, lexer.ErrNoMatch
		}
		var perr *lexer.ParseError
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, &lexer.ParseError{Pos: pos, Err: fmt.Errorf("column reference: %w", err)}
	}
	if col == nil || end <= pos || end > len(p.cur.Input()) {
		return nil, p.cur.ErrorAt(pos, fmt.Errorf("column reference parser returned invalid end position %d", end))
	}
	p.cur.Reset(end)
	return col, nil
}

// parseGroupedExpression parses a grouped expression like (expr)
func (p *Parser) parseGroupedExpression() (ast.Primary, error) {
	open := p.cur.Pos()
	if p.depth >= p.maxDepth {
		return nil, p.cur.ErrorAt(open, lexer.ErrMaxDepthExceeded)
	}

	p.cur.Advance(1) // consume '('
	p.depth++
	expr, err := p.parseExpression()
	p.depth--
	if err != nil {
		p.cur.Reset(open)
		return nil, err
	}

	p.cur.SkipSpace()
	if !p.cur.Accept(')') {
		err := p.cur.ErrorAt(p.cur.Pos(), lexer.ErrMissingCloseParen)
		p.cur.Reset(open)
		return nil, err
	}

	return &ast.Parenthesized{Expr: expr}, nil
}
