package gallium

// execUpdateText replaces the element's first non-whitespace text
// child, keeping the whitespace around it so indentation survives.
// With no such child the whole between-tags region is replaced. A
// self-closing element has no text to update.
func execUpdateText(el *Element, op UpdateText) (*editPlan, error) {
	if el.selfClosing || el.closeStart < 0 {
		return nil, ErrNoClosingTag
	}

	for _, child := range el.children {
		t, ok := child.(*Text)
		if !ok || t.IsBlank() {
			continue
		}
		lead := 0
		for lead < len(t.value) && isBlankCh(rune(t.value[lead])) {
			lead++
		}
		trail := 0
		for trail < len(t.value)-lead && isBlankCh(rune(t.value[len(t.value)-1-trail])) {
			trail++
		}
		return &editPlan{
			ranges: []textRange{{
				start: t.start + lead,
				end:   t.end - trail,
				repl:  []byte(op.Text),
			}},
			newStart: -1,
		}, nil
	}

	return &editPlan{
		ranges: []textRange{{
			start: el.openEnd,
			end:   el.closeStart,
			repl:  []byte(op.Text),
		}},
		newStart: -1,
	}, nil
}
