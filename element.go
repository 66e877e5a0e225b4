package gallium

// Element is one markup node: opening tag, attributes, children,
// optional closing tag. Offsets index into the source the element was
// parsed from:
//
//	openStart  at the '<' of the opening tag
//	nameEnd    right after the tag name (attribute insertion point)
//	openEnd    right after the '>' of the opening tag
//	closeStart at the '<' of the closing tag, -1 when self-closing
//	end        right after the final '>'
//
// A self-closing element has openEnd == end and no closing tag. A
// fragment (<>...</>) is an element with an empty name.
type Element struct {
	name        string
	attrs       []*Attribute
	children    []Node
	selfClosing bool
	line        int // 1-based, of openStart
	col         int // 1-based, of openStart
	openStart   int
	nameEnd     int
	openEnd     int
	closeStart  int
	end         int
}

func (e *Element) Type() NodeType {
	return ElementNode
}

func (e *Element) Name() string {
	return e.name
}

// IsFragment reports whether this is a <>...</> fragment.
func (e *Element) IsFragment() bool {
	return e.name == ""
}

func (e *Element) SelfClosing() bool {
	return e.selfClosing
}

func (e *Element) Attributes() []*Attribute {
	return e.attrs
}

// Attribute returns the attribute named name. When the source declares
// the same name more than once the last occurrence wins.
func (e *Element) Attribute(name string) (*Attribute, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if !e.attrs[i].spread && e.attrs[i].name == name {
			return e.attrs[i], true
		}
	}
	return nil, false
}

// HasSpread reports whether the element carries a {...expr} spread
// attribute. A spread makes the element statically unanalyzable for
// attribute writes: no text substitution can be proven to win over the
// spread at runtime.
func (e *Element) HasSpread() bool {
	for _, a := range e.attrs {
		if a.spread {
			return true
		}
	}
	return false
}

func (e *Element) Children() []Node {
	return e.children
}

func (e *Element) Start() int {
	return e.openStart
}

func (e *Element) End() int {
	return e.end
}

// OpenEnd returns the offset right after the '>' of the opening tag.
func (e *Element) OpenEnd() int {
	return e.openEnd
}

// CloseStart returns the offset of the '</' of the closing tag, or -1
// for a self-closing element.
func (e *Element) CloseStart() int {
	return e.closeStart
}

func (e *Element) Line() int {
	return e.line
}

func (e *Element) Column() int {
	return e.col
}

// Location returns the address of the element's opening tag.
func (e *Element) Location(fileName string) SourceLocation {
	return SourceLocation{FileName: fileName, Line: e.line, Column: e.col}
}
