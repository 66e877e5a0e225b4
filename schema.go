package gallium

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"unicode"
)

var ErrSchemaNotFound = errors.New("no props declaration found for component")

// ResolveComponentFile resolves a capitalized component name to its
// defining file among files (path to contents). Resolution order:
// exact kebab-cased file name (AlertDialogTrigger wants
// alert-dialog-trigger.tsx), then shortened composite prefixes
// (alert-dialog.tsx, alert.tsx), then a full scan for an export
// statement declaring the name. Candidates are tried in sorted path
// order so the result is deterministic.
func ResolveComponentFile(name string, files map[string]string) (string, bool) {
	paths := slices.Sorted(maps.Keys(files))

	words := splitCamel(name)
	for n := len(words); n >= 1; n-- {
		base := strings.ToLower(strings.Join(words[:n], "-"))
		for _, p := range paths {
			if stripExt(baseName(p)) == base {
				return p, true
			}
		}
	}

	for _, p := range paths {
		if declaresExport(files[p], name) {
			return p, true
		}
	}
	return "", false
}

func splitCamel(name string) []string {
	var words []string
	start := 0
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, name[start:i])
			start = i
		}
	}
	return append(words, name[start:])
}

func baseName(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

func stripExt(p string) string {
	if i := strings.LastIndexByte(p, '.'); i > 0 {
		return p[:i]
	}
	return p
}

// declaresExport reports whether src exports an identifier called
// name, either at a declaration or in an export list.
func declaresExport(src, name string) bool {
	for _, kw := range []string{
		"export function ",
		"export default function ",
		"export const ",
		"export let ",
		"export var ",
		"export class ",
	} {
		if idx := strings.Index(src, kw+name); idx >= 0 {
			rest := src[idx+len(kw)+len(name):]
			if rest == "" || !isIdentCh(rest[0]) {
				return true
			}
		}
	}

	// export { Foo, Bar as Baz }
	rest := src
	for {
		idx := strings.Index(rest, "export {")
		if idx < 0 {
			break
		}
		rest = rest[idx+len("export {"):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			break
		}
		for part := range strings.SplitSeq(rest[:end], ",") {
			part = strings.TrimSpace(part)
			// `Foo as Bar` exports Bar
			if i := strings.Index(part, " as "); i >= 0 {
				part = strings.TrimSpace(part[i+4:])
			}
			if part == name {
				return true
			}
		}
		rest = rest[end:]
	}
	return false
}

// ScanPropSchema locates the `interface NameProps {...}` or `type
// NameProps = {...}` declaration in src and extracts the attributes
// whose declared type is a pure string-literal union. One non-literal
// union member disqualifies that attribute entirely: a partial
// enumeration would promise edits the component cannot take.
func ScanPropSchema(src []byte, name string) (AttributeSchema, error) {
	body, ok := propsBody(string(src), name)
	if !ok {
		return nil, ErrSchemaNotFound
	}

	schema := AttributeSchema{}
	for _, entry := range splitEntries(body) {
		colon := strings.IndexByte(entry, ':')
		if colon < 0 {
			continue
		}
		key := strings.TrimSpace(entry[:colon])
		key = strings.TrimSuffix(key, "?")
		key = strings.TrimSpace(key)
		if key == "" || !isIdentWord(key) {
			continue
		}
		options, ok := literalUnion(entry[colon+1:])
		if !ok {
			continue
		}
		schema[key] = options
	}
	return schema, nil
}

// propsBody returns the interior of the props declaration's braces.
func propsBody(src, name string) (string, bool) {
	decl := name + "Props"
	for _, prefix := range []string{"interface ", "type "} {
		idx := 0
		for {
			i := strings.Index(src[idx:], prefix+decl)
			if i < 0 {
				break
			}
			at := idx + i + len(prefix) + len(decl)
			if at < len(src) && isIdentCh(src[at]) {
				idx = at
				continue
			}
			open := strings.IndexByte(src[at:], '{')
			if open < 0 {
				break
			}
			return balancedBody(src[at+open:])
		}
	}
	return "", false
}

func balancedBody(src string) (string, bool) {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[1:i], true
			}
		}
	}
	return "", false
}

// splitEntries splits an interface body into member entries at
// top-level ';' and newlines.
func splitEntries(body string) []string {
	var entries []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			if depth > 0 {
				depth--
			}
		case ';', '\n':
			if depth == 0 {
				entries = append(entries, body[start:i])
				start = i + 1
			}
		}
	}
	return append(entries, body[start:])
}

// literalUnion parses a declared type; ok only when every union member
// is a quoted string literal.
func literalUnion(typ string) ([]string, bool) {
	var options []string
	for member := range strings.SplitSeq(typ, "|") {
		member = strings.TrimSpace(member)
		if member == "" {
			continue
		}
		if len(member) < 2 {
			return nil, false
		}
		q := member[0]
		if (q != '"' && q != '\'') || member[len(member)-1] != q {
			return nil, false
		}
		inner := member[1 : len(member)-1]
		if strings.ContainsRune(inner, rune(q)) {
			return nil, false
		}
		options = append(options, inner)
	}
	return options, len(options) > 0
}

func isIdentWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentCh(s[i]) {
			return false
		}
	}
	return len(s) > 0
}
