package lexer

import (
	"errors"
	"fmt"
)

// Sentinel errors of the expression grammar. They are wrapped in a *ParseError that
// carries the position, so callers match them with errors.Is.
var (
	// ErrNoMatch means an alternative does not apply at the current position. It is a
	// signal to try the next alternative, not a syntax error, and never consumes input.
	ErrNoMatch = errors.New("no match")

	// Literal errors
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrInvalidCharacter   = errors.New("invalid character in string literal")
	ErrNumericOutOfRange  = errors.New("numeric literal out of range")

	// Grammar errors
	ErrExpectedOperand   = errors.New("expected column reference, literal, parameter or '('")
	ErrMissingCloseParen = errors.New("missing closing parenthesis")
	ErrUnexpectedInput   = errors.New("unexpected input after expression")
	ErrMaxDepthExceeded  = errors.New("parentheses nested too deeply")
	ErrEmptyInput        = errors.New("empty expression")
	ErrInvalidPosition   = errors.New("start position outside of input")
)

// fragmentLen caps the source text quoted in error messages.
const fragmentLen = 32

// ParseError is a syntax error anchored at a byte offset of the parsed text.
type ParseError struct {
	// Pos is the byte offset of the furthest position the parser reached.
	Pos int
	// Fragment is the source text from the failing construct onwards, possibly
	// truncated. It is empty when the failure is at the end of the input.
	Fragment string
	// Err is one of the sentinel errors of this package.
	Err error
}

func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("sqlexpr: %v at position %d (end of input)", e.Err, e.Pos)
	}
	return fmt.Sprintf("sqlexpr: %v at position %d near %q", e.Err, e.Pos, e.Fragment)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError builds a ParseError at pos whose fragment starts at from.
func NewParseError(input string, pos, from int, err error) *ParseError {
	return &ParseError{Pos: pos, Fragment: fragment(input, from), Err: err}
}

func fragment(input string, from int) string {
	if from < 0 || from >= len(input) {
		return ""
	}
	end := from + fragmentLen
	if end > len(input) {
		end = len(input)
	}
	return input[from:end]
}
