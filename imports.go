package gallium

import (
	"bytes"
	"path"
	"slices"
	"strings"
)

// ImportSpec names a binding that must exist in a target file:
// `import Name from "path"` when Default, `import { Name } from
// "path"` otherwise.
type ImportSpec struct {
	Name    string
	Path    string
	Default bool
}

type ImportResult struct {
	Source        []byte
	AlreadyExists bool
}

// EnsureImport makes sure src imports spec.Name. With WithTargetFile,
// a "./"-relative spec.Path is re-rooted to the right "../" depth for
// that file's directory (files at the project root are unchanged).
//
// It no-ops when the exact (name, resolved-path) pair exists, and when
// the bare name is already imported from any path at all: two bindings
// of one identifier break the file, so duplicate-identifier avoidance
// takes priority over path correctness. Otherwise the binding joins an
// existing import from the resolved path, or a new import statement
// goes in after the last existing import (at the top of the file when
// there is none).
func EnsureImport(src []byte, spec ImportSpec, options ...ImportOption) (*ImportResult, error) {
	var targetFile string
	for _, option := range options {
		switch option.Ident().(type) {
		case identTargetFile:
			targetFile = option.Value().(string)
		}
	}

	resolved := resolveImportPath(spec.Path, targetFile)
	stmts := scanImports(src)

	for _, st := range stmts {
		if st.binds(spec.Name) {
			return &ImportResult{Source: src, AlreadyExists: true}, nil
		}
	}

	for _, st := range stmts {
		if st.path != resolved {
			continue
		}
		r, ok := st.joinRange(src, spec)
		if !ok {
			// a second default binding cannot join; fall through to a
			// fresh statement
			break
		}
		out, err := applyRanges(src, []textRange{r})
		if err != nil {
			return nil, err
		}
		return &ImportResult{Source: out}, nil
	}

	stmt := renderImport(spec.Name, resolved, spec.Default)
	var r textRange
	if len(stmts) == 0 {
		r = textRange{start: 0, end: 0, repl: []byte(stmt + "\n")}
	} else {
		last := stmts[len(stmts)-1]
		r = textRange{start: last.end, end: last.end, repl: []byte("\n" + stmt)}
	}
	out, err := applyRanges(src, []textRange{r})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Source: out}, nil
}

// resolveImportPath re-roots a "./"-relative import for the directory
// of targetFile. Non-relative paths and root-level files pass through.
func resolveImportPath(p, targetFile string) string {
	if targetFile == "" || !strings.HasPrefix(p, "./") {
		return p
	}
	dir := path.Dir(strings.TrimPrefix(targetFile, "/"))
	if dir == "." || dir == "/" {
		return p
	}
	depth := strings.Count(dir, "/") + 1
	return strings.Repeat("../", depth) + strings.TrimPrefix(p, "./")
}

func renderImport(name, p string, isDefault bool) string {
	if isDefault {
		return `import ` + name + ` from "` + p + `";`
	}
	return `import { ` + name + ` } from "` + p + `";`
}

// importStmt is one parsed import statement. Offsets index into the
// scanned source.
type importStmt struct {
	start          int
	end            int // after the ';' when present
	defaultName    string
	defaultNameEnd int
	nsName         string // `* as nsName`
	named          []string
	braceOpen      int // -1 without a brace list
	braceClose     int
	keywordEnd     int // right after "import"
	path           string
}

func (st importStmt) binds(name string) bool {
	return st.defaultName == name || st.nsName == name || slices.Contains(st.named, name)
}

// joinRange computes the splice that adds one more binding to this
// statement.
func (st importStmt) joinRange(src []byte, spec ImportSpec) (textRange, bool) {
	if spec.Default {
		if st.defaultName != "" {
			return textRange{}, false
		}
		return textRange{start: st.keywordEnd, end: st.keywordEnd, repl: []byte(" " + spec.Name + ",")}, true
	}
	if st.braceOpen >= 0 {
		// splice in just after the last binding, before any closing
		// whitespace
		p := st.braceClose
		for p > st.braceOpen+1 && (src[p-1] == ' ' || src[p-1] == '\t' || src[p-1] == '\n' || src[p-1] == '\r') {
			p--
		}
		if len(st.named) == 0 {
			return textRange{start: st.braceOpen + 1, end: st.braceClose, repl: []byte(" " + spec.Name + " ")}, true
		}
		if src[p-1] == ',' {
			// the list already has a trailing comma
			return textRange{start: p, end: p, repl: []byte(" " + spec.Name + ",")}, true
		}
		return textRange{start: p, end: p, repl: []byte(", " + spec.Name)}, true
	}
	if st.defaultName != "" {
		p := st.defaultNameEnd
		return textRange{start: p, end: p, repl: []byte(", { " + spec.Name + " }")}, true
	}
	return textRange{}, false
}

// scanImports walks src line by line picking up import statements,
// including multi-line brace lists. Dynamic import() calls are not
// import statements and are skipped.
func scanImports(src []byte) []importStmt {
	var stmts []importStmt
	pos := 0
	for pos < len(src) {
		pos = skipImportBlanks(src, pos)
		if pos >= len(src) {
			break
		}
		if !hasWordAt(src, pos, "import") {
			pos = nextLine(src, pos)
			continue
		}
		after := skipInlineBlanks(src, pos+len("import"))
		if after < len(src) && (src[after] == '(' || src[after] == '.') {
			pos = nextLine(src, pos)
			continue
		}
		st, next, ok := parseImportAt(src, pos)
		if !ok {
			pos = nextLine(src, pos)
			continue
		}
		stmts = append(stmts, st)
		pos = next
	}
	return stmts
}

func parseImportAt(src []byte, start int) (importStmt, int, bool) {
	st := importStmt{start: start, braceOpen: -1, braceClose: -1}
	pos := start + len("import")
	st.keywordEnd = pos
	pos = skipImportBlanks(src, pos)

	// side-effect import: import "path"
	if pos < len(src) && (src[pos] == '"' || src[pos] == '\'') {
		p, next, ok := scanQuoted(src, pos)
		if !ok {
			return st, 0, false
		}
		st.path = p
		st.end = consumeSemi(src, next)
		return st, st.end, true
	}

	// TS `import type { ... }` still binds the identifiers
	if hasWordAt(src, pos, "type") && !hasWordAt(src, skipImportBlanks(src, pos+4), "from") {
		pos = skipImportBlanks(src, pos+4)
	}

	for pos < len(src) {
		switch {
		case src[pos] == '*':
			pos = skipImportBlanks(src, pos+1)
			if !hasWordAt(src, pos, "as") {
				return st, 0, false
			}
			pos = skipImportBlanks(src, pos+2)
			name, next := scanIdent(src, pos)
			if name == "" {
				return st, 0, false
			}
			st.nsName = name
			pos = next
		case src[pos] == '{':
			st.braceOpen = pos
			pos++
			for pos < len(src) && src[pos] != '}' {
				pos = skipImportBlanks(src, pos)
				if pos >= len(src) || src[pos] == '}' {
					break
				}
				name, next := scanIdent(src, pos)
				if name == "" {
					pos++
					continue
				}
				pos = skipImportBlanks(src, next)
				if hasWordAt(src, pos, "as") {
					pos = skipImportBlanks(src, pos+2)
					name, pos = scanIdent(src, pos)
				}
				st.named = append(st.named, name)
				pos = skipImportBlanks(src, pos)
				if pos < len(src) && src[pos] == ',' {
					pos++
				}
			}
			if pos >= len(src) {
				return st, 0, false
			}
			st.braceClose = pos
			pos++
		case src[pos] == ',':
			pos++
		default:
			name, next := scanIdent(src, pos)
			if name == "" {
				return st, 0, false
			}
			if name == "from" {
				pos = skipImportBlanks(src, next)
				p, qnext, ok := scanQuoted(src, pos)
				if !ok {
					return st, 0, false
				}
				st.path = p
				st.end = consumeSemi(src, qnext)
				return st, st.end, true
			}
			st.defaultName = name
			st.defaultNameEnd = next
			pos = next
		}
		pos = skipImportBlanks(src, pos)
	}
	return st, 0, false
}

func hasWordAt(src []byte, pos int, word string) bool {
	if !bytes.HasPrefix(src[pos:], []byte(word)) {
		return false
	}
	rest := src[pos+len(word):]
	return len(rest) == 0 || !isIdentCh(rest[0])
}

func isIdentCh(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func scanIdent(src []byte, pos int) (string, int) {
	start := pos
	for pos < len(src) && isIdentCh(src[pos]) {
		pos++
	}
	return string(src[start:pos]), pos
}

func scanQuoted(src []byte, pos int) (string, int, bool) {
	q := src[pos]
	end := bytes.IndexByte(src[pos+1:], q)
	if end < 0 {
		return "", 0, false
	}
	return string(src[pos+1 : pos+1+end]), pos + 1 + end + 1, true
}

func consumeSemi(src []byte, pos int) int {
	pos = skipInlineBlanks(src, pos)
	if pos < len(src) && src[pos] == ';' {
		return pos + 1
	}
	return pos
}

func skipInlineBlanks(src []byte, pos int) int {
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	return pos
}

// skipImportBlanks skips whitespace and comments between import
// tokens.
func skipImportBlanks(src []byte, pos int) int {
	for pos < len(src) {
		switch {
		case src[pos] == ' ' || src[pos] == '\t' || src[pos] == '\n' || src[pos] == '\r':
			pos++
		case bytes.HasPrefix(src[pos:], []byte("//")):
			pos = nextLine(src, pos)
		case bytes.HasPrefix(src[pos:], []byte("/*")):
			end := bytes.Index(src[pos+2:], []byte("*/"))
			if end < 0 {
				return len(src)
			}
			pos += 2 + end + 2
		default:
			return pos
		}
	}
	return pos
}

func nextLine(src []byte, pos int) int {
	nl := bytes.IndexByte(src[pos:], '\n')
	if nl < 0 {
		return len(src)
	}
	return pos + nl + 1
}
