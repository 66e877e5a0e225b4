package gallium

import "strings"

// execUpdateAttribute rewrites an attribute in place, or inserts it at
// a zero-length point right after the tag name when the element does
// not carry it yet.
func execUpdateAttribute(el *Element, op UpdateAttribute) (*editPlan, error) {
	repl := serializeAttr(op.Name, op.Value)
	if a, ok := el.Attribute(op.Name); ok {
		return &editPlan{
			ranges:   []textRange{{start: a.start, end: a.end, repl: repl}},
			newStart: -1,
		}, nil
	}
	return &editPlan{
		ranges:   []textRange{{start: el.nameEnd, end: el.nameEnd, repl: append([]byte(" "), repl...)}},
		newStart: -1,
	}, nil
}

// execRemoveAttribute deletes the attribute's source range, absorbing
// its leading whitespace so no blank gap remains in the tag.
func execRemoveAttribute(src []byte, el *Element, op RemoveAttribute) (*editPlan, error) {
	a, ok := el.Attribute(op.Name)
	if !ok {
		return nil, ErrAttrNotFound{Name: op.Name}
	}
	start := a.start
	for start > el.nameEnd && isBlankCh(rune(src[start-1])) {
		start--
	}
	return &editPlan{
		ranges:   []textRange{{start: start, end: a.end}},
		newStart: -1,
	}, nil
}

// serializeAttr renders an attribute for insertion or replacement.
// Boolean true is the bare name (JSX implies it), false is explicit,
// strings pick whichever quote style the value does not contain.
func serializeAttr(name string, v Value) []byte {
	switch v.kind {
	case AttrValueBool:
		if v.b {
			return []byte(name)
		}
		return []byte(name + "={false}")
	}
	return []byte(name + "=" + quoteAttrValue(v.str))
}

func quoteAttrValue(s string) string {
	hasDouble := strings.Contains(s, `"`)
	hasSingle := strings.Contains(s, `'`)
	switch {
	case hasDouble && hasSingle:
		return `"` + strings.ReplaceAll(s, `"`, "&quot;") + `"`
	case hasDouble:
		return `'` + s + `'`
	}
	return `"` + s + `"`
}
