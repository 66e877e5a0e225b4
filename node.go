package gallium

type NodeType int

const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	ExprNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case ExprNode:
		return "Expr"
	}
	return "Unknown"
}

// Node is one node of the parsed tree. Start and End are byte offsets
// into the source the tree was parsed from; every edit is ultimately a
// splice between two such offsets.
type Node interface {
	Type() NodeType
	Start() int
	End() int
}

// Walk visits n and its descendants in document order. The walk stops
// when fn returns false. Attributes are not visited; they belong to
// their element, not to the sibling order.
func Walk(n Node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	switch n := n.(type) {
	case *Document:
		for _, child := range n.children {
			if !Walk(child, fn) {
				return false
			}
		}
	case *Element:
		for _, child := range n.children {
			if !Walk(child, fn) {
				return false
			}
		}
	case *Expr:
		for _, child := range n.children {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}
