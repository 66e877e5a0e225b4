// Package gallium is a surgical source-mutation engine for JSX/TSX-style
// markup embedded in host code. Given raw source text and the (file,
// line, column) address of one element's opening tag, it applies a
// single structural edit and returns new source that differs from the
// input only in the byte ranges the edit touched. All other bytes,
// whitespace and comments included, survive untouched.
//
// Every call is an atomic parse, locate, edit cycle over a fresh tree;
// there is no persistent document state, no I/O, and no shared mutable
// cache, so concurrent calls are safe.
package gallium

const Version = "0.1.0"
