// Package ast defines the syntax tree produced by the SQL scalar expression grammar.
//
// The tree mirrors the grammar's four precedence levels:
//
//	Expression := Term { ('+' | '-') Term }
//	Term       := Factor { ('*' | '/') Factor }
//	Factor     := [ '+' | '-' ] Primary
//	Primary    := ColumnReference | '?' | StringLiteral | NumericLiteral | '(' Expression ')'
//
// Term and Expression store their operands as an anchor plus a flat, ordered list of
// operator/operand pairs, so a consumer folds them left to right. Every node is built
// once by the parser and never modified afterwards; no node has more than one parent.
package ast

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Node is implemented by every node of the tree.
type Node interface {
	String() string
	node()
}

// Primary is the smallest operand of an expression. Exactly one of the variant types
// below implements it, so a Primary value is always a single, well defined case.
type Primary interface {
	Node
	primary()
}

// ColumnReference names a column, optionally qualified by a table or alias.
type ColumnReference struct {
	// Table is the qualifier written before the dot, empty when unqualified.
	Table string
	// Name is the column identifier.
	Name string
}

func (*ColumnReference) node()    {}
func (*ColumnReference) primary() {}

func (c *ColumnReference) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// DynamicParameter is the '?' placeholder bound at execution time.
type DynamicParameter struct {
	// Ordinal is the 1-based position of the placeholder among all placeholders
	// of the parsed text.
	Ordinal int
}

func (*DynamicParameter) node()    {}
func (*DynamicParameter) primary() {}

func (*DynamicParameter) String() string { return "?" }

// StringLiteral is a double-quoted literal. Value holds the decoded text, with every
// doubled quote collapsed to a single one.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) node()    {}
func (*StringLiteral) primary() {}

func (s *StringLiteral) String() string {
	return `"` + strings.ReplaceAll(s.Value, `"`, `""`) + `"`
}

// NumericLiteral is an unsigned decimal integer. A leading sign belongs to the
// enclosing Factor.
type NumericLiteral struct {
	Value int64
}

func (*NumericLiteral) node()    {}
func (*NumericLiteral) primary() {}

func (n *NumericLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

// DecimalLiteral is an unsigned exact numeric with a fractional part, such as 12.50.
type DecimalLiteral struct {
	Value decimal.Decimal
}

func (*DecimalLiteral) node()    {}
func (*DecimalLiteral) primary() {}

func (d *DecimalLiteral) String() string {
	places := -d.Value.Exponent()
	if places < 1 {
		places = 1
	}
	return d.Value.StringFixed(places)
}

// Parenthesized is a grouped sub-expression.
type Parenthesized struct {
	Expr *Expression
}

func (*Parenthesized) node()    {}
func (*Parenthesized) primary() {}

func (p *Parenthesized) String() string { return "(" + p.Expr.String() + ")" }

// Sign is the optional unary sign of a Factor.
type Sign byte

const (
	SignNone  Sign = 0
	SignPlus  Sign = '+'
	SignMinus Sign = '-'
)

func (s Sign) String() string {
	if s == SignNone {
		return ""
	}
	return string(rune(s))
}

// MulOp is a multiplicative operator joining the factors of a Term.
type MulOp byte

const (
	Multiply MulOp = '*'
	Divide   MulOp = '/'
)

func (o MulOp) String() string { return string(rune(o)) }

// AddOp is an additive operator joining the terms of an Expression.
type AddOp byte

const (
	Add      AddOp = '+'
	Subtract AddOp = '-'
)

func (o AddOp) String() string { return string(rune(o)) }

// Factor is a Primary with an optional sign. SignNone means the same as SignPlus.
type Factor struct {
	Sign    Sign
	Operand Primary
}

func (*Factor) node() {}

func (f *Factor) String() string {
	if f.Operand == nil {
		return f.Sign.String()
	}
	return f.Sign.String() + f.Operand.String()
}

// TermPart is one operator/factor pair following the anchor of a Term.
type TermPart struct {
	Op     MulOp
	Factor Factor
}

// Term is a left-associative chain of factors joined by '*' or '/'.
type Term struct {
	First Factor
	Rest  []TermPart
}

func (*Term) node() {}

// Len returns the number of factors in the term.
func (t *Term) Len() int { return 1 + len(t.Rest) }

func (t *Term) String() string {
	var b strings.Builder
	b.WriteString(t.First.String())
	for i := range t.Rest {
		b.WriteByte(' ')
		b.WriteByte(byte(t.Rest[i].Op))
		b.WriteByte(' ')
		b.WriteString(t.Rest[i].Factor.String())
	}
	return b.String()
}

// ExpressionPart is one operator/term pair following the anchor of an Expression.
type ExpressionPart struct {
	Op   AddOp
	Term Term
}

// Expression is a left-associative chain of terms joined by '+' or '-'.
type Expression struct {
	First Term
	Rest  []ExpressionPart
}

func (*Expression) node() {}

// Len returns the number of terms in the expression.
func (e *Expression) Len() int { return 1 + len(e.Rest) }

func (e *Expression) String() string {
	var b strings.Builder
	b.WriteString(e.First.String())
	for i := range e.Rest {
		b.WriteByte(' ')
		b.WriteByte(byte(e.Rest[i].Op))
		b.WriteByte(' ')
		b.WriteString(e.Rest[i].Term.String())
	}
	return b.String()
}
