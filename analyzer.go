package gallium

import (
	"maps"
	"slices"

	"github.com/lestrrat-go/gallium/internal/orderedmap"
)

// DefaultPositionAttribute is the instrumentation attribute the
// preview build stamps onto every element so selections can be traced
// back to source. It is plumbing, not an editable attribute.
const DefaultPositionAttribute = "data-source-loc"

// AttributeSchema maps an attribute name to the set of string literals
// its declared type allows. Produced by ScanPropSchema.
type AttributeSchema map[string][]string

// AttributeInfo is one row of an element's editing surface. Present is
// false for a phantom entry: an attribute the component's schema
// declares but the instance does not set.
type AttributeInfo struct {
	Name    string
	Value   AttrValue
	Options []string
	Present bool
}

// internal attribute names that never appear on the editing surface
var hiddenAttrs = map[string]struct{}{
	"children": {},
	"key":      {},
	"ref":      {},
}

// Attributes returns the element's editable attributes in source
// order. Spreads and internal names (children, key, ref, and the
// position-instrumentation attribute) are excluded. When a schema is
// supplied, its string-union attributes annotate matching entries with
// their enumeration and merge in as unset phantom entries otherwise.
// A duplicated attribute name keeps its first position; the last
// occurrence wins for the value.
func Attributes(el *Element, options ...AnalyzeOption) []AttributeInfo {
	var schema AttributeSchema
	posAttr := DefaultPositionAttribute
	for _, option := range options {
		switch option.Ident().(type) {
		case identSchema:
			schema = option.Value().(AttributeSchema)
		case identPositionAttribute:
			posAttr = option.Value().(string)
		}
	}

	m := orderedmap.New[string, AttributeInfo]()
	for _, a := range el.attrs {
		if a.spread {
			continue
		}
		if _, hidden := hiddenAttrs[a.name]; hidden || a.name == posAttr {
			continue
		}
		m.Replace(a.name, AttributeInfo{
			Name:    a.name,
			Value:   a.value,
			Present: true,
		})
	}

	for _, name := range slices.Sorted(maps.Keys(schema)) {
		if info, ok := m.Get(name); ok {
			info.Options = schema[name]
			m.Replace(name, info)
			continue
		}
		m.Replace(name, AttributeInfo{
			Name:    name,
			Options: schema[name],
			Value:   AttrValue{kind: AttrValueAbsent},
			Present: false,
		})
	}

	list := make([]AttributeInfo, 0, m.Len())
	for _, info := range m.Range() {
		list = append(list, info)
	}
	return list
}

// IsSafelyEditable reports whether an attribute value can be rewritten
// by plain text substitution: absent, a string literal (quoted or a
// lone string-literal expression), or a boolean literal. Any other
// expression is opaque and must go through the limited-edit contract
// instead of blind substitution.
func IsSafelyEditable(v AttrValue) bool {
	return v.kind != AttrValueExpr
}
