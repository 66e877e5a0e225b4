package gallium

import (
	"errors"
	"fmt"
)

// Parse-level sentinels. The parser wraps each of these in an ErrParse
// carrying the line, column, and source line it failed at.
var (
	ErrEmptyName              = errors.New("tag name required")
	ErrGtRequired             = errors.New("'>' was required here")
	ErrAttrValueRequired      = errors.New("attribute value required after '='")
	ErrUnterminatedTag        = errors.New("unterminated opening tag")
	ErrUnterminatedElement    = errors.New("closing tag not found")
	ErrUnterminatedString     = errors.New("unterminated string literal")
	ErrUnterminatedExpression = errors.New("unterminated '{' expression")
	ErrUnterminatedComment    = errors.New("unterminated block comment")
	ErrUnterminatedRegexp     = errors.New("unterminated regular expression")
	ErrTagMismatch            = errors.New("closing tag does not match opening tag")
)

// Engine-level sentinels, visible across the public boundary through
// errors.Is.
var (
	// ErrNotFound means the address no longer matches any element —
	// typically the preview and the source have drifted apart.
	ErrNotFound = errors.New("no element at the given location")
	// ErrStaleLocation is the swap-specific miss, distinguished so a
	// caller can tell a stale reference from a structurally absent
	// element.
	ErrStaleLocation = errors.New("stale source location")
	ErrNoSibling     = errors.New("no sibling element in the requested direction")
	// ErrStructuralInvalid rejects edits that would nest an element
	// within its own subtree.
	ErrStructuralInvalid = errors.New("edit would nest an element inside its own subtree")
	ErrUnsafeEdit        = errors.New("attribute value is an opaque expression")
	ErrNoClosingTag      = errors.New("element has no closing tag")
)

// ErrParse is a malformed-source failure. Nothing was edited.
type ErrParse struct {
	Err        error
	Line       string
	LineNumber int
	Column     int
	Location   int // byte offset
}

func (e ErrParse) Error() string {
	return fmt.Sprintf(
		"%s at line %d, column %d\n -> '%s' <-- around here",
		e.Err,
		e.LineNumber,
		e.Column,
		e.Line,
	)
}

func (e ErrParse) Unwrap() error {
	return e.Err
}

// ErrAttrNotFound reports a removal of an attribute the element does
// not carry.
type ErrAttrNotFound struct {
	Name string
}

func (e ErrAttrNotFound) Error() string {
	return "attribute '" + e.Name + "' not found"
}

// Machine-readable failure reasons, for hosts that switch on strings
// rather than error values.
const (
	ReasonParseError           = "ParseError"
	ReasonNotFound             = "NotFound"
	ReasonNoSiblingInDirection = "NoSiblingInDirection"
	ReasonStaleSourceLocation  = "StaleSourceLocation"
	ReasonStructuralInvalid    = "StructuralInvalid"
	ReasonUnsafeEdit           = "UnsafeEdit"
	ReasonUnknown              = "Unknown"
)

// Reason maps any engine error to the failure taxonomy the host uses
// to decide between retry, re-selection, and a user-visible error.
func Reason(err error) string {
	var pe ErrParse
	switch {
	case errors.As(err, &pe):
		return ReasonParseError
	case errors.Is(err, ErrStaleLocation):
		return ReasonStaleSourceLocation
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrNoSibling):
		return ReasonNoSiblingInDirection
	case errors.Is(err, ErrStructuralInvalid):
		return ReasonStructuralInvalid
	case errors.Is(err, ErrUnsafeEdit):
		return ReasonUnsafeEdit
	}
	return ReasonUnknown
}
