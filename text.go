package gallium

// Text is a run of character data. Inside an element it is literal
// markup text; at the document level and inside expression containers
// it is the host code between elements, kept so that sibling walks see
// every byte of the source accounted for.
type Text struct {
	start int
	end   int
	value []byte
}

func (t *Text) Type() NodeType {
	return TextNode
}

func (t *Text) Start() int {
	return t.start
}

func (t *Text) End() int {
	return t.end
}

func (t *Text) Value() []byte {
	return t.value
}

// IsBlank reports whether the run is whitespace only.
func (t *Text) IsBlank() bool {
	for _, c := range t.value {
		if !isBlankCh(rune(c)) {
			return false
		}
	}
	return true
}

// Expr is a brace-delimited {...} container. Its interior is rescanned
// at code level, so elements nested in expressions (a .map callback,
// a conditional) appear as children with correct offsets and remain
// addressable. Elements inside an Expr belong to the Expr, not to the
// outer element's sibling order.
type Expr struct {
	start    int
	end      int
	raw      []byte // including the braces
	children []Node
}

func (x *Expr) Type() NodeType {
	return ExprNode
}

func (x *Expr) Start() int {
	return x.start
}

func (x *Expr) End() int {
	return x.end
}

// Raw returns the container source, braces included.
func (x *Expr) Raw() []byte {
	return x.raw
}

func (x *Expr) Children() []Node {
	return x.children
}

func isBlankCh(c rune) bool {
	return c == 0x20 || (0x9 <= c && c <= 0xa) || c == 0xd
}
