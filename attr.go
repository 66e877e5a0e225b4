package gallium

type AttrValueKind int

const (
	// AttrValueAbsent is a bare attribute with no value; JSX semantics
	// make it implicitly true.
	AttrValueAbsent AttrValueKind = iota
	// AttrValueString is a quoted string, or a braced expression that
	// is nothing but a single string literal ({"x"}, {'x'}, {`x`}
	// without interpolation).
	AttrValueString
	// AttrValueBool is {true} or {false}.
	AttrValueBool
	// AttrValueExpr is any other braced expression. Opaque: not safely
	// rewritable by text substitution.
	AttrValueExpr
)

func (k AttrValueKind) String() string {
	switch k {
	case AttrValueAbsent:
		return "absent"
	case AttrValueString:
		return "string"
	case AttrValueBool:
		return "bool"
	case AttrValueExpr:
		return "expr"
	}
	return "unknown"
}

// AttrValue is the value side of an attribute. start/end cover the
// value's own source range including its quotes or braces; for an
// absent value both equal the end of the attribute name.
type AttrValue struct {
	kind  AttrValueKind
	str   string
	b     bool
	start int
	end   int
}

func (v AttrValue) Kind() AttrValueKind {
	return v.kind
}

// Literal returns the string payload of an AttrValueString value.
func (v AttrValue) Literal() string {
	return v.str
}

func (v AttrValue) Bool() bool {
	return v.b
}

// Source returns the raw expression source of an AttrValueExpr value,
// braces included.
func (v AttrValue) Source() string {
	return v.str
}

func (v AttrValue) Start() int {
	return v.start
}

func (v AttrValue) End() int {
	return v.end
}

// Attribute is one name/value pair on an opening tag. start/end cover
// the whole attribute: name through the end of its value. A spread
// ({...expr}) has no name; its raw source is in the value.
type Attribute struct {
	name   string
	spread bool
	value  AttrValue
	start  int
	end    int
}

func (a *Attribute) Name() string {
	return a.name
}

func (a *Attribute) Spread() bool {
	return a.spread
}

func (a *Attribute) Value() AttrValue {
	return a.value
}

func (a *Attribute) Start() int {
	return a.start
}

func (a *Attribute) End() int {
	return a.end
}
