package gallium

import "fmt"

// Locate finds the element whose opening-tag start matches loc,
// comparing only the recorded line and column. The first match in
// document order wins and the traversal stops there; when generated
// source puts several elements on one address, disambiguation is the
// caller's problem, never silently resolved here. A miss is
// ErrNotFound.
func Locate(doc *Document, loc SourceLocation) (*Element, error) {
	site, ok := locateSite(doc, loc)
	if !ok {
		return nil, fmt.Errorf("%w: %d:%d", ErrNotFound, loc.Line, loc.Column)
	}
	return site.el, nil
}

// elementSite is a located element together with the sibling list that
// contains it. The tree keeps no parent back-references; operations
// that need siblings get them from here.
type elementSite struct {
	el       *Element
	siblings []Node
	index    int
}

func locateSite(doc *Document, loc SourceLocation) (*elementSite, bool) {
	return findInSiblings(doc.children, loc)
}

func findInSiblings(siblings []Node, loc SourceLocation) (*elementSite, bool) {
	for i, child := range siblings {
		switch child := child.(type) {
		case *Element:
			if child.line == loc.Line && child.col == loc.Column {
				return &elementSite{el: child, siblings: siblings, index: i}, true
			}
			if site, ok := findInSiblings(child.children, loc); ok {
				return site, ok
			}
		case *Expr:
			if site, ok := findInSiblings(child.children, loc); ok {
				return site, ok
			}
		}
	}
	return nil, false
}
