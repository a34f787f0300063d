package lexer

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nlstn/go-sqlexpr/ast"
)

// stringPunctuation lists the punctuation allowed inside a quoted string literal
// besides letters, digits, whitespace and the doubled quote.
const stringPunctuation = ";:'?/\\|,.<>!@#$%^&*()-_+=[]{}~`"

var stringChars = func() (t [256]bool) {
	for ch := 'a'; ch <= 'z'; ch++ {
		t[ch] = true
		t[ch-'a'+'A'] = true
	}
	for ch := '0'; ch <= '9'; ch++ {
		t[ch] = true
	}
	for _, ch := range []byte(" \t\n\v\f\r" + stringPunctuation) {
		t[ch] = true
	}
	return t
}()

// IsSpace reports whether ch is ASCII whitespace.
func IsSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\v' || ch == '\f' || ch == '\r'
}

// IsDigit reports whether ch is an ASCII digit.
func IsDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

// IsLetter reports whether ch is an ASCII letter.
func IsLetter(ch byte) bool { return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' }

// IsStringChar reports whether ch may appear unescaped inside a quoted string literal.
func IsStringChar(ch byte) bool { return stringChars[ch] }

// ReadQuotedString reads a double-quoted string literal and returns its decoded text.
// A doubled quote inside the literal stands for one quote character.
func (c *Cursor) ReadQuotedString() (string, error) {
	start := c.pos
	if !c.Accept('"') {
		return "", ErrNoMatch
	}

	var b strings.Builder
	for {
		if c.EOF() {
			c.pos = start
			return "", NewParseError(c.input, len(c.input), start, ErrUnterminatedString)
		}

		ch := c.input[c.pos]
		switch {
		case ch == '"' && c.PeekAt(1) == '"':
			b.WriteByte('"')
			c.pos += 2
		case ch == '"':
			c.pos++
			return b.String(), nil
		case IsStringChar(ch):
			b.WriteByte(ch)
			c.pos++
		default:
			err := c.ErrorAt(c.pos, ErrInvalidCharacter)
			c.pos = start
			return "", err
		}
	}
}

// ReadDynamicParameter consumes a '?' placeholder.
func (c *Cursor) ReadDynamicParameter() bool {
	return c.Accept('?')
}

// ReadNumber reads an unsigned numeric literal. Digits alone produce a
// *ast.NumericLiteral; digits, a dot and more digits produce a *ast.DecimalLiteral.
func (c *Cursor) ReadNumber() (ast.Primary, error) {
	start := c.pos
	if !IsDigit(c.Peek()) {
		return nil, ErrNoMatch
	}
	for IsDigit(c.Peek()) {
		c.pos++
	}

	if c.Peek() == '.' && IsDigit(c.PeekAt(1)) {
		c.pos++
		for IsDigit(c.Peek()) {
			c.pos++
		}
		d, err := decimal.NewFromString(c.input[start:c.pos])
		if err != nil {
			c.pos = start
			return nil, c.ErrorAt(start, ErrNumericOutOfRange)
		}
		return &ast.DecimalLiteral{Value: d}, nil
	}

	n, err := strconv.ParseInt(c.input[start:c.pos], 10, 64)
	if err != nil {
		c.pos = start
		return nil, c.ErrorAt(start, ErrNumericOutOfRange)
	}
	return &ast.NumericLiteral{Value: n}, nil
}

// ReadIdentifier reads an ASCII identifier: a letter or underscore followed by
// letters, digits and underscores. Identifiers never start with a digit, so they
// cannot be confused with numeric literals.
func (c *Cursor) ReadIdentifier() (string, bool) {
	start := c.pos
	if ch := c.Peek(); !IsLetter(ch) && ch != '_' {
		return "", false
	}
	for ch := c.Peek(); IsLetter(ch) || IsDigit(ch) || ch == '_'; ch = c.Peek() {
		c.pos++
	}
	return c.input[start:c.pos], true
}

// ReadLiteral reads a string literal, a placeholder or a numeric literal, tried in
// that order. Placeholders are returned with a zero ordinal; numbering them is up to
// the caller.
func (c *Cursor) ReadLiteral() (ast.Primary, error) {
	s, err := c.ReadQuotedString()
	if err == nil {
		return &ast.StringLiteral{Value: s}, nil
	}
	if err != ErrNoMatch {
		return nil, err
	}

	if c.ReadDynamicParameter() {
		return &ast.DynamicParameter{}, nil
	}

	return c.ReadNumber()
}
