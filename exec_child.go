package gallium

// execInsertChild splices child markup into an element. A
// self-closing element converts to a container first; the new child
// and an explicit closing tag replace the '/>'.
func execInsertChild(src []byte, el *Element, op InsertChild) (*editPlan, error) {
	if el.selfClosing {
		return &editPlan{
			ranges:   []textRange{containerConversion(src, el, op.Markup)},
			newStart: -1,
		}, nil
	}
	if el.closeStart < 0 {
		return nil, ErrNoClosingTag
	}

	point := el.closeStart
	switch op.Position {
	case ChildStart:
		point = el.openEnd
	case ChildIndex:
		// the index counts element children only; past the end means
		// append
		n := 0
		for _, child := range el.children {
			if c, ok := child.(*Element); ok {
				if n == op.Index {
					point = c.openStart
					break
				}
				n++
			}
		}
	}
	return &editPlan{
		ranges:   []textRange{{start: point, end: point, repl: []byte(op.Markup)}},
		newStart: -1,
	}, nil
}

// containerConversion replaces a self-closing tail with '>' + markup +
// an explicit closing tag, absorbing the whitespace run before the
// '/>' so `<Foo />` becomes `<Foo>...</Foo>`, never a dangling
// self-close.
func containerConversion(src []byte, el *Element, markup string) textRange {
	start := el.end - 2 // at the '/'
	for start > el.nameEnd && isBlankCh(rune(src[start-1])) {
		start--
	}
	return textRange{
		start: start,
		end:   el.end,
		repl:  []byte(">" + markup + "</" + el.name + ">"),
	}
}
