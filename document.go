package gallium

// Document is the result of one parse. It owns the original source
// bytes and the top-level children: markup elements interleaved with
// the host-code runs between them (stored as Text nodes so that
// sibling logic is uniform at every level of the tree).
//
// The document is built fresh per call and holds no references back
// into the parser, so it may outlive the parse and be walked from
// multiple goroutines. Nothing mutates it after Parse returns.
type Document struct {
	fileName string
	src      []byte
	children []Node
}

func (d *Document) Type() NodeType {
	return DocumentNode
}

func (d *Document) Start() int {
	return 0
}

func (d *Document) End() int {
	return len(d.src)
}

func (d *Document) FileName() string {
	return d.fileName
}

// Source returns the bytes the document was parsed from. Callers must
// not modify the returned slice.
func (d *Document) Source() []byte {
	return d.src
}

func (d *Document) Children() []Node {
	return d.children
}

// Elements returns the top-level markup elements, skipping the code
// runs between them.
func (d *Document) Elements() []*Element {
	var list []*Element
	for _, child := range d.children {
		if e, ok := child.(*Element); ok {
			list = append(list, e)
		}
	}
	return list
}
