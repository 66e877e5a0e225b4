package gallium

// Value is a literal attribute value carried by an update operation:
// a string or a boolean. Opaque expressions are never written by the
// engine, so there is no expression variant.
type Value struct {
	kind AttrValueKind
	str  string
	b    bool
}

func StringValue(s string) Value {
	return Value{kind: AttrValueString, str: s}
}

func BoolValue(b bool) Value {
	return Value{kind: AttrValueBool, b: b}
}

func (v Value) Kind() AttrValueKind {
	return v.kind
}

// Operation is one of the seven structural edits. Each carries its
// minimal parameters; the element it applies to is addressed by the
// SourceLocation given to Edit.
type Operation interface {
	operation()
}

// UpdateAttribute sets an attribute to a literal value, creating the
// attribute when the element does not carry it.
type UpdateAttribute struct {
	Name  string
	Value Value
}

func (UpdateAttribute) operation() {}

type RemoveAttribute struct {
	Name string
}

func (RemoveAttribute) operation() {}

type ChildPosition int

const (
	// ChildStart inserts right after the opening tag's '>'.
	ChildStart ChildPosition = iota
	// ChildEnd inserts right before the closing tag.
	ChildEnd
	// ChildIndex inserts before the Index-th element child; an index
	// past the last element child behaves as ChildEnd.
	ChildIndex
)

// InsertChild splices child markup into an element, converting a
// self-closing element into a container first when necessary.
type InsertChild struct {
	Markup   string
	Position ChildPosition
	Index    int
}

func (InsertChild) operation() {}

// UpdateText replaces the element's first non-whitespace text child,
// preserving its surrounding whitespace; with no text child, the whole
// between-tags region is replaced.
type UpdateText struct {
	Text string
}

func (UpdateText) operation() {}

type DeleteElement struct{}

func (DeleteElement) operation() {}

type Direction int

const (
	DirectionPrev Direction = iota
	DirectionNext
)

func (d Direction) String() string {
	if d == DirectionNext {
		return "next"
	}
	return "prev"
}

// SwapSibling reorders the element with its nearest element-typed
// sibling in the given direction. Relocating: the result carries the
// element's fresh address.
type SwapSibling struct {
	Direction Direction
}

func (SwapSibling) operation() {}

type MovePosition int

const (
	MoveBefore MovePosition = iota
	MoveAfter
	MoveInside
)

func (p MovePosition) String() string {
	switch p {
	case MoveAfter:
		return "after"
	case MoveInside:
		return "inside"
	}
	return "before"
}

// MoveElement extracts the element and re-inserts it relative to the
// element at Target. Relocating: the result carries the element's
// fresh address.
type MoveElement struct {
	Target   SourceLocation
	Position MovePosition
}

func (MoveElement) operation() {}
