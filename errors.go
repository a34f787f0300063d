package sqlexpr

import (
	"errors"

	"github.com/nlstn/go-sqlexpr/internal/lexer"
)

// ParseError is a syntax error anchored at a byte offset of the parsed text.
// Every error returned by Parse and ParseAt is a *ParseError wrapping one of the
// sentinel errors below.
//
// Example:
//
//	var perr *sqlexpr.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Printf("syntax error at %d near %q\n", perr.Pos, perr.Fragment)
//	}
type ParseError = lexer.ParseError

// Sentinel errors for syntax error conditions.
// These can be used with errors.Is() for error handling.
var (
	// ErrNoMatch is returned by a ColumnReferenceParser when no column reference
	// starts at the given position. It never escapes Parse or ParseAt.
	ErrNoMatch = lexer.ErrNoMatch

	// ErrUnterminatedString indicates a quoted string literal without closing quote.
	ErrUnterminatedString = lexer.ErrUnterminatedString

	// ErrInvalidCharacter indicates a character that may not appear in a string literal.
	ErrInvalidCharacter = lexer.ErrInvalidCharacter

	// ErrNumericOutOfRange indicates an integer literal that does not fit in 64 bits.
	ErrNumericOutOfRange = lexer.ErrNumericOutOfRange

	// ErrExpectedOperand indicates that no operand starts at the error position.
	ErrExpectedOperand = lexer.ErrExpectedOperand

	// ErrMissingCloseParen indicates a parenthesized expression without ')'.
	ErrMissingCloseParen = lexer.ErrMissingCloseParen

	// ErrUnexpectedInput indicates text after a complete expression.
	ErrUnexpectedInput = lexer.ErrUnexpectedInput

	// ErrMaxDepthExceeded indicates parentheses nested deeper than the parser allows.
	ErrMaxDepthExceeded = lexer.ErrMaxDepthExceeded

	// ErrEmptyInput indicates that there is no expression text at all.
	ErrEmptyInput = lexer.ErrEmptyInput

	// ErrInvalidPosition indicates a start position outside of the text.
	ErrInvalidPosition = lexer.ErrInvalidPosition
)

// ErrorKind values, as returned by ErrorKind and used as metric attributes.
const (
	KindUnterminatedString = "unterminated_string"
	KindInvalidCharacter   = "invalid_character"
	KindNumericOutOfRange  = "numeric_out_of_range"
	KindExpectedOperand    = "expected_operand"
	KindMissingCloseParen  = "missing_close_paren"
	KindUnexpectedInput    = "unexpected_input"
	KindMaxDepthExceeded   = "max_depth_exceeded"
	KindEmptyInput         = "empty_input"
	KindInvalidPosition    = "invalid_position"
	KindOther              = "other"
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrUnterminatedString, KindUnterminatedString},
	{ErrInvalidCharacter, KindInvalidCharacter},
	{ErrNumericOutOfRange, KindNumericOutOfRange},
	{ErrExpectedOperand, KindExpectedOperand},
	{ErrMissingCloseParen, KindMissingCloseParen},
	{ErrUnexpectedInput, KindUnexpectedInput},
	{ErrMaxDepthExceeded, KindMaxDepthExceeded},
	{ErrEmptyInput, KindEmptyInput},
	{ErrInvalidPosition, KindInvalidPosition},
}

// ErrorKind returns a short, stable name for the sentinel wrapped by err, or
// KindOther when err wraps none of them (for instance a column parser failure).
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindOther
}
