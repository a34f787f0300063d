package grammar

import (
	"github.com/nlstn/go-sqlexpr/ast"
)

// parseExpression handles '+' and '-' (lowest precedence)
func (p *Parser) parseExpression() (*ast.Expression, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	expr := &ast.Expression{First: first}
	for {
		op := p.skipToOperator("+-")
		if op == 0 {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr.Rest = append(expr.Rest, ast.ExpressionPart{Op: ast.AddOp(op), Term: term})
	}

	return expr, nil
}

// parseTerm handles '*' and '/'
func (p *Parser) parseTerm() (ast.Term, error) {
	first, err := p.parseFactor()
	if err != nil {
		return ast.Term{}, err
	}

	term := ast.Term{First: first}
	for {
		op := p.skipToOperator("*/")
		if op == 0 {
			break
		}
		factor, err := p.parseFactor()
		if err != nil {
			return ast.Term{}, err
		}
		term.Rest = append(term.Rest, ast.TermPart{Op: ast.MulOp(op), Factor: factor})
	}

	return term, nil
}

// parseFactor handles an optional unary sign in front of a primary
func (p *Parser) parseFactor() (ast.Factor, error) {
	start := p.cur.Pos()
	p.cur.SkipSpace()

	var factor ast.Factor
	if ch := p.cur.Peek(); ch == '+' || ch == '-' {
		factor.Sign = ast.Sign(ch)
		p.cur.Advance(1)
		p.cur.SkipSpace()
	}

	operand, err := p.parsePrimary()
	if err != nil {
		p.cur.Reset(start)
		return ast.Factor{}, err
	}
	factor.Operand = operand

	return factor, nil
}
