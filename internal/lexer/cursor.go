// Package lexer recognises the literal tokens of the SQL scalar expression grammar:
// quoted strings, numbers, the '?' placeholder and identifiers.
//
// All readers work on a Cursor and follow the same contract: on success they advance
// the cursor past the token, on ErrNoMatch or any other error they leave it where it
// was. The grammar relies on this to try alternatives in order.
package lexer

// Cursor is a byte position within an input string.
type Cursor struct {
	input string
	pos   int
}

// NewCursor creates a cursor over input positioned at pos.
func NewCursor(input string, pos int) *Cursor {
	return &Cursor{input: input, pos: pos}
}

// Input returns the whole text the cursor runs over.
func (c *Cursor) Input() string { return c.input }

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Reset moves the cursor back (or forward) to pos.
func (c *Cursor) Reset(pos int) { c.pos = pos }

// EOF reports whether the cursor is at the end of the input.
func (c *Cursor) EOF() bool { return c.pos >= len(c.input) }

// Peek returns the byte under the cursor, or 0 at the end of the input.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte offset bytes after the cursor, or 0 past the end.
func (c *Cursor) PeekAt(offset int) byte {
	if c.pos+offset >= len(c.input) {
		return 0
	}
	return c.input[c.pos+offset]
}

// Advance moves the cursor n bytes forward.
func (c *Cursor) Advance(n int) { c.pos += n }

// Accept consumes ch if it is the next byte.
func (c *Cursor) Accept(ch byte) bool {
	if c.EOF() || c.input[c.pos] != ch {
		return false
	}
	c.pos++
	return true
}

// SkipSpace skips ASCII whitespace.
func (c *Cursor) SkipSpace() {
	for !c.EOF() && IsSpace(c.input[c.pos]) {
		c.pos++
	}
}

// Remaining reports whether anything but whitespace is left after the cursor.
func (c *Cursor) Remaining() bool {
	for i := c.pos; i < len(c.input); i++ {
		if !IsSpace(c.input[i]) {
			return true
		}
	}
	return false
}

// ErrorAt returns a ParseError at pos quoting the input from pos onwards.
func (c *Cursor) ErrorAt(pos int, err error) *ParseError {
	return NewParseError(c.input, pos, pos, err)
}
