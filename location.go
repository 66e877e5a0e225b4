package gallium

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// SourceLocation is the address of an element's opening-tag start.
// Line and Column are 1-based; Column counts runes from the start of
// the line. Values are immutable: a relocating edit returns a fresh
// location, never mutates the one it was given.
type SourceLocation struct {
	FileName string
	Line     int
	Column   int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.FileName, l.Line, l.Column)
}

// locationAt computes the 1-based line/column of byte offset off in
// src. Used to mint a fresh address after a relocating edit.
func locationAt(src []byte, off int, fileName string) SourceLocation {
	if off > len(src) {
		off = len(src)
	}
	line := 1 + bytes.Count(src[:off], []byte{'\n'})
	lineStart := bytes.LastIndexByte(src[:off], '\n') + 1
	col := 1 + utf8.RuneCount(src[lineStart:off])
	return SourceLocation{FileName: fileName, Line: line, Column: col}
}
