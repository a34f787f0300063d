// Package columnref recognises column references of the form [table '.'] column.
//
// The expression grammar treats column names as an external capability: it calls a
// Parser and either gets a column reference back or ErrNoMatch. Drivers with their own
// identifier rules (quoted names, catalog prefixes) supply a different Parser.
package columnref

import (
	"github.com/nlstn/go-sqlexpr/ast"
	"github.com/nlstn/go-sqlexpr/internal/lexer"
)

// Parser recognises a column reference starting at pos. On success it returns the
// reference and the position after it. When no column reference starts at pos it
// returns lexer.ErrNoMatch and must not consume input.
type Parser interface {
	ParseColumnReference(input string, pos int) (*ast.ColumnReference, int, error)
}

// Func adapts a function to the Parser interface.
type Func func(input string, pos int) (*ast.ColumnReference, int, error)

// ParseColumnReference calls f(input, pos).
func (f Func) ParseColumnReference(input string, pos int) (*ast.ColumnReference, int, error) {
	return f(input, pos)
}

// Default recognises plain identifiers with an optional table qualifier.
type Default struct{}

// ParseColumnReference implements Parser.
func (Default) ParseColumnReference(input string, pos int) (*ast.ColumnReference, int, error) {
	c := lexer.NewCursor(input, pos)
	first, ok := c.ReadIdentifier()
	if !ok {
		return nil, pos, lexer.ErrNoMatch
	}

	if c.Peek() == '.' {
		dot := c.Pos()
		c.Advance(1)
		if name, ok := c.ReadIdentifier(); ok {
			return &ast.ColumnReference{Table: first, Name: name}, c.Pos(), nil
		}
		// "t." not followed by a name: leave the dot to the caller
		c.Reset(dot)
	}

	return &ast.ColumnReference{Name: first}, c.Pos(), nil
}
