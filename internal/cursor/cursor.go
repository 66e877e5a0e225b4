// Package cursor provides a rune-aware cursor over a byte buffer that
// tracks byte offsets and 1-based line/column positions as it advances.
// It backs the parser so that every node and every error can report the
// exact location it came from.
package cursor

import (
	"bytes"
	"unicode/utf8"
)

type Cursor struct {
	in        []byte
	off       int // byte offset of the next unread byte
	line      int // 1-based
	col       int // 1-based, counted in runes
	lineStart int // byte offset where the current line begins
}

// Mark is an opaque snapshot of a cursor position, used for backtracking.
type Mark struct {
	off       int
	line      int
	col       int
	lineStart int
}

func New(in []byte) *Cursor {
	return &Cursor{
		in:   in,
		line: 1,
		col:  1,
	}
}

// Done reports whether the cursor has consumed all input.
func (c *Cursor) Done() bool {
	return c.off >= len(c.in)
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.in) - c.off
}

// HasChars reports whether at least n bytes remain.
func (c *Cursor) HasChars(n int) bool {
	return c.off+n <= len(c.in)
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.in[c.off:], []byte(s))
}

// Peek returns the n-th unread rune (1-based) without advancing. It
// returns 0 when fewer than n runes remain.
func (c *Cursor) Peek(n int) rune {
	if n <= 0 {
		return 0
	}
	off := c.off
	for i := 0; i < n; i++ {
		if off >= len(c.in) {
			return 0
		}
		r, size := utf8.DecodeRune(c.in[off:])
		if i == n-1 {
			return r
		}
		off += size
	}
	return 0
}

// Advance consumes n runes.
func (c *Cursor) Advance(n int) {
	for i := 0; i < n && c.off < len(c.in); i++ {
		c.step()
	}
}

// Consume consumes n runes and returns them as a string.
func (c *Cursor) Consume(n int) string {
	start := c.off
	c.Advance(n)
	return string(c.in[start:c.off])
}

// ConsumePrefix consumes s if the unread input starts with it, and
// reports whether it did.
func (c *Cursor) ConsumePrefix(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	end := c.off + len(s)
	for c.off < end {
		c.step()
	}
	return true
}

// OffsetBytes returns the byte offset of the next unread byte.
func (c *Cursor) OffsetBytes() int {
	return c.off
}

func (c *Cursor) LineNumber() int {
	return c.line
}

func (c *Cursor) Column() int {
	return c.col
}

// CurrentLine returns the text of the line the cursor is on, without
// its trailing newline.
func (c *Cursor) CurrentLine() string {
	end := bytes.IndexByte(c.in[c.lineStart:], '\n')
	if end < 0 {
		end = len(c.in) - c.lineStart
	}
	line := c.in[c.lineStart : c.lineStart+end]
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return string(line)
}

// Bytes returns the unread portion of the input.
func (c *Cursor) Bytes() []byte {
	return c.in[c.off:]
}

// Mark captures the current position for a later Reset.
func (c *Cursor) Mark() Mark {
	return Mark{off: c.off, line: c.line, col: c.col, lineStart: c.lineStart}
}

// Reset rewinds the cursor to a previously captured Mark.
func (c *Cursor) Reset(m Mark) {
	c.off = m.off
	c.line = m.line
	c.col = m.col
	c.lineStart = m.lineStart
}

func (c *Cursor) step() {
	r, size := utf8.DecodeRune(c.in[c.off:])
	c.off += size
	if r == '\n' {
		c.line++
		c.col = 1
		c.lineStart = c.off
	} else {
		c.col++
	}
}
