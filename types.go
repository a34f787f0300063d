package sqlexpr

import (
	"github.com/nlstn/go-sqlexpr/ast"
	"github.com/nlstn/go-sqlexpr/internal/columnref"
)

// Expression re-exports the root node of a parsed expression.
//
// An Expression is an additive chain of terms; each Term is a multiplicative chain of
// factors; each Factor is an optionally signed Primary. See package ast for the
// variants of Primary.
type Expression = ast.Expression

// Term re-exports the multiplicative chain node.
type Term = ast.Term

// Factor re-exports the signed operand node.
type Factor = ast.Factor

// Primary re-exports the operand interface.
type Primary = ast.Primary

// ColumnReference re-exports the column reference operand.
type ColumnReference = ast.ColumnReference

// DynamicParameter re-exports the '?' placeholder operand.
type DynamicParameter = ast.DynamicParameter

// ColumnReferenceParser recognises column references for the grammar. An
// implementation returns ErrNoMatch, without consuming input, when no column
// reference starts at pos.
type ColumnReferenceParser = columnref.Parser

// ColumnReferenceFunc adapts a function to ColumnReferenceParser.
type ColumnReferenceFunc = columnref.Func
