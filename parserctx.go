package gallium

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/lestrrat-go/gallium/internal/cursor"
	"github.com/lestrrat-go/gallium/internal/debug"
	"github.com/lestrrat-go/gallium/internal/stack"
)

// errNotMarkup is an internal backtracking signal: what looked like an
// opening tag turned out to be a TS generic parameter list (<T,>).
// Never escapes the parser.
var errNotMarkup = errors.New("not a markup element")

type parserCtx struct {
	fileName  string
	src       []byte
	cursor    *cursor.Cursor
	elemNames stack.Stack[string] // open elements, innermost on top
}

func (ctx *parserCtx) init(fileName string, src []byte) {
	ctx.fileName = fileName
	ctx.src = src
	ctx.cursor = cursor.New(src)
}

func (ctx *parserCtx) error(err error) error {
	// If it's wrapped, just return as is
	if _, ok := err.(ErrParse); ok {
		return err
	}

	return ErrParse{
		Err:        err,
		Line:       ctx.cursor.CurrentLine(),
		LineNumber: ctx.cursor.LineNumber(),
		Column:     ctx.cursor.Column(),
		Location:   ctx.cursor.OffsetBytes(),
	}
}

func (ctx *parserCtx) curHasChars(n int) bool {
	return ctx.cursor.HasChars(n)
}

func (ctx *parserCtx) curDone() bool {
	return ctx.cursor.Done()
}

func (ctx *parserCtx) curAdvance(n int) {
	ctx.cursor.Advance(n)
}

func (ctx *parserCtx) curPeek(n int) rune {
	return ctx.cursor.Peek(n)
}

func (ctx *parserCtx) curConsumePrefix(s string) bool {
	return ctx.cursor.ConsumePrefix(s)
}

func (ctx *parserCtx) curHasPrefix(s string) bool {
	return ctx.cursor.HasPrefix(s)
}

func (ctx *parserCtx) curOffset() int {
	return ctx.cursor.OffsetBytes()
}

func (ctx *parserCtx) skipBlanks() {
	for isBlankCh(ctx.curPeek(1)) && !ctx.curDone() {
		ctx.curAdvance(1)
	}
}

func isNameStartCh(c rune) bool {
	return c == '_' || c == '$' || unicode.IsLetter(c)
}

// Tag and attribute names: JSX allows member chains (Foo.Bar),
// namespaces (a:b) and dashed names (data-x, aria-x).
func isNameCh(c rune) bool {
	return isNameStartCh(c) || unicode.IsDigit(c) || c == '-' || c == ':' || c == '.'
}

func isWordCh(c rune) bool {
	return isNameStartCh(c) || unicode.IsDigit(c)
}

// Keywords after which a '<' opens markup even though the keyword scans
// as an identifier.
var markupAfterKeyword = map[string]struct{}{
	"await":      {},
	"case":       {},
	"default":    {},
	"delete":     {},
	"do":         {},
	"else":       {},
	"in":         {},
	"instanceof": {},
	"new":        {},
	"of":         {},
	"return":     {},
	"throw":      {},
	"typeof":     {},
	"void":       {},
	"yield":      {},
}

func (ctx *parserCtx) parseDocument() (*Document, error) {
	if debug.Enabled {
		g := debug.IPrintf("START parseDocument %q", ctx.fileName)
		defer g.IRelease("END   parseDocument")
	}

	children, err := ctx.scanCode(0)
	if err != nil {
		return nil, err
	}
	return &Document{
		fileName: ctx.fileName,
		src:      ctx.src,
		children: children,
	}, nil
}

// scanCode scans host code, collecting markup elements, until EOF
// (stop == 0) or until the matching close brace (stop == '}'), which
// is left unconsumed. The code runs between elements are recorded as
// Text nodes so that every byte of the source stays accounted for and
// sibling logic is uniform at every level.
//
// The scanner tracks strings, template literals, comments, and regular
// expressions, and treats '<' as a tag opener only where an expression
// may begin: after an operator, an opening bracket, a separator, a
// return-like keyword, or at the start of input. Directly after an
// identifier, a number, or a closing bracket it is a comparison.
func (ctx *parserCtx) scanCode(stop byte) ([]Node, error) {
	var children []Node
	runStart := ctx.curOffset()
	operand := false
	depth := 0

	flush := func(end int) {
		if end > runStart {
			children = append(children, &Text{
				start: runStart,
				end:   end,
				value: ctx.src[runStart:end],
			})
		}
	}

	for !ctx.curDone() {
		c := ctx.curPeek(1)
		switch {
		case c == '"' || c == '\'':
			if err := ctx.scanString(c); err != nil {
				return nil, err
			}
			operand = true
		case c == '`':
			if err := ctx.scanTemplate(); err != nil {
				return nil, err
			}
			operand = true
		case c == '/' && ctx.curPeek(2) == '/':
			ctx.skipLineComment()
		case c == '/' && ctx.curPeek(2) == '*':
			if err := ctx.skipBlockComment(); err != nil {
				return nil, err
			}
		case c == '/':
			if operand {
				// division
				ctx.curAdvance(1)
				operand = false
			} else {
				if err := ctx.scanRegexp(); err != nil {
					return nil, err
				}
				operand = true
			}
		case c == '<' && !operand:
			off := ctx.curOffset()
			mark := ctx.cursor.Mark()
			el, err := ctx.parseElement()
			if err == errNotMarkup {
				ctx.cursor.Reset(mark)
				ctx.curAdvance(1)
				continue
			}
			if err != nil {
				return nil, err
			}
			flush(off)
			children = append(children, el)
			runStart = ctx.curOffset()
			// adjacent elements: the next '<' opens markup too
		case c == '{':
			if stop == '}' {
				depth++
			}
			ctx.curAdvance(1)
			operand = false
		case c == '}' && stop == '}':
			if depth == 0 {
				flush(ctx.curOffset())
				return children, nil
			}
			depth--
			ctx.curAdvance(1)
			operand = false
		case c == ')' || c == ']':
			ctx.curAdvance(1)
			operand = true
		case isWordCh(c):
			word := ctx.scanWord()
			_, kw := markupAfterKeyword[word]
			operand = !kw
		case isBlankCh(c):
			// whitespace does not change what the last significant
			// token was
			ctx.curAdvance(1)
		default:
			ctx.curAdvance(1)
			operand = false
		}
	}

	if stop == '}' {
		return nil, ctx.error(ErrUnterminatedExpression)
	}
	flush(ctx.curOffset())
	return children, nil
}

func (ctx *parserCtx) scanWord() string {
	start := ctx.curOffset()
	for isWordCh(ctx.curPeek(1)) && !ctx.curDone() {
		ctx.curAdvance(1)
	}
	return string(ctx.src[start:ctx.curOffset()])
}

// scanString consumes a single- or double-quoted code-level string,
// cursor on the opening quote. A raw newline before the closing quote
// is malformed input.
func (ctx *parserCtx) scanString(quote rune) error {
	ctx.curAdvance(1)
	for {
		if ctx.curDone() {
			return ctx.error(ErrUnterminatedString)
		}
		switch c := ctx.curPeek(1); c {
		case '\\':
			ctx.curAdvance(2)
		case '\n':
			return ctx.error(ErrUnterminatedString)
		case quote:
			ctx.curAdvance(1)
			return nil
		default:
			ctx.curAdvance(1)
		}
	}
}

// scanTemplate consumes a template literal including any ${...}
// interpolations. Interpolation interiors are scanned for balance
// only; elements inside them are not collected.
func (ctx *parserCtx) scanTemplate() error {
	ctx.curAdvance(1)
	for {
		if ctx.curDone() {
			return ctx.error(ErrUnterminatedString)
		}
		switch {
		case ctx.curPeek(1) == '\\':
			ctx.curAdvance(2)
		case ctx.curPeek(1) == '`':
			ctx.curAdvance(1)
			return nil
		case ctx.curHasPrefix("${"):
			if err := ctx.scanTemplateExpr(); err != nil {
				return err
			}
		default:
			ctx.curAdvance(1)
		}
	}
}

func (ctx *parserCtx) scanTemplateExpr() error {
	ctx.curAdvance(2) // ${
	depth := 1
	for {
		if ctx.curDone() {
			return ctx.error(ErrUnterminatedExpression)
		}
		switch c := ctx.curPeek(1); c {
		case '"', '\'':
			if err := ctx.scanString(c); err != nil {
				return err
			}
		case '`':
			if err := ctx.scanTemplate(); err != nil {
				return err
			}
		case '{':
			depth++
			ctx.curAdvance(1)
		case '}':
			depth--
			ctx.curAdvance(1)
			if depth == 0 {
				return nil
			}
		default:
			ctx.curAdvance(1)
		}
	}
}

func (ctx *parserCtx) scanRegexp() error {
	ctx.curAdvance(1)
	inClass := false
	for {
		if ctx.curDone() {
			return ctx.error(ErrUnterminatedRegexp)
		}
		switch c := ctx.curPeek(1); c {
		case '\\':
			ctx.curAdvance(2)
		case '\n':
			return ctx.error(ErrUnterminatedRegexp)
		case '[':
			inClass = true
			ctx.curAdvance(1)
		case ']':
			inClass = false
			ctx.curAdvance(1)
		case '/':
			ctx.curAdvance(1)
			if !inClass {
				// flags
				ctx.scanWord()
				return nil
			}
		default:
			ctx.curAdvance(1)
		}
	}
}

func (ctx *parserCtx) skipLineComment() {
	for !ctx.curDone() && ctx.curPeek(1) != '\n' {
		ctx.curAdvance(1)
	}
}

func (ctx *parserCtx) skipBlockComment() error {
	ctx.curAdvance(2)
	for !ctx.curDone() {
		if ctx.curConsumePrefix("*/") {
			return nil
		}
		ctx.curAdvance(1)
	}
	return ctx.error(ErrUnterminatedComment)
}

// parseName consumes a tag or attribute name, or returns "" without
// advancing when the cursor is not on a name start.
func (ctx *parserCtx) parseName() string {
	if !isNameStartCh(ctx.curPeek(1)) {
		return ""
	}
	start := ctx.curOffset()
	ctx.curAdvance(1)
	for isNameCh(ctx.curPeek(1)) && !ctx.curDone() {
		ctx.curAdvance(1)
	}
	return string(ctx.src[start:ctx.curOffset()])
}

// parseElement parses one element, cursor on its '<'.
func (ctx *parserCtx) parseElement() (*Element, error) {
	e := &Element{
		openStart:  ctx.curOffset(),
		line:       ctx.cursor.LineNumber(),
		col:        ctx.cursor.Column(),
		closeStart: -1,
	}
	ctx.curAdvance(1) // '<'
	e.name = ctx.parseName()
	e.nameEnd = ctx.curOffset()
	ctx.elemNames.Push(e.name)
	defer ctx.elemNames.Pop()

	if debug.Enabled {
		debug.Printf(" --> element <%s> at %d:%d", e.name, e.line, e.col)
	}

	if e.name == "" && ctx.curPeek(1) != '>' {
		return nil, ctx.error(ErrEmptyName)
	}

	for {
		ctx.skipBlanks()
		if ctx.curDone() {
			return nil, ctx.error(ErrUnterminatedTag)
		}
		c := ctx.curPeek(1)
		switch {
		case c == '/':
			if ctx.curPeek(2) != '>' {
				return nil, ctx.error(ErrGtRequired)
			}
			ctx.curAdvance(2)
			e.selfClosing = true
			e.openEnd = ctx.curOffset()
			e.end = e.openEnd
			return e, nil
		case c == '>':
			ctx.curAdvance(1)
			e.openEnd = ctx.curOffset()
			if err := ctx.parseContent(e); err != nil {
				return nil, err
			}
			return e, nil
		case c == '{':
			a, err := ctx.parseSpread()
			if err != nil {
				return nil, err
			}
			e.attrs = append(e.attrs, a)
		case c == ',':
			// a TS generic parameter list like <T,>, not markup
			return nil, errNotMarkup
		case isNameStartCh(c):
			a, err := ctx.parseAttribute()
			if err != nil {
				return nil, err
			}
			e.attrs = append(e.attrs, a)
		default:
			return nil, ctx.error(ErrUnterminatedTag)
		}
	}
}

// parseContent parses children until the matching closing tag.
func (ctx *parserCtx) parseContent(e *Element) error {
	for {
		if ctx.curDone() {
			return ctx.error(fmt.Errorf("%w: <%s>", ErrUnterminatedElement, e.name))
		}
		c := ctx.curPeek(1)
		switch {
		case c == '<' && ctx.curPeek(2) == '/':
			e.closeStart = ctx.curOffset()
			ctx.curAdvance(2)
			name := ctx.parseName()
			if name != e.name {
				// a closing tag for an ancestor means this element was
				// never closed, which is the more useful complaint
				for _, open := range ctx.elemNames {
					if open == name {
						return ctx.error(fmt.Errorf("%w: <%s>", ErrUnterminatedElement, e.name))
					}
				}
				return ctx.error(fmt.Errorf("%w: expected </%s>, got </%s>", ErrTagMismatch, e.name, name))
			}
			ctx.skipBlanks()
			if ctx.curPeek(1) != '>' {
				return ctx.error(ErrGtRequired)
			}
			ctx.curAdvance(1)
			e.end = ctx.curOffset()
			return nil
		case c == '<':
			child, err := ctx.parseElement()
			if err == errNotMarkup {
				return ctx.error(ErrUnterminatedTag)
			}
			if err != nil {
				return err
			}
			e.children = append(e.children, child)
		case c == '{':
			x, err := ctx.parseExprContainer()
			if err != nil {
				return err
			}
			e.children = append(e.children, x)
		default:
			start := ctx.curOffset()
			for !ctx.curDone() {
				c := ctx.curPeek(1)
				if c == '<' || c == '{' {
					break
				}
				ctx.curAdvance(1)
			}
			e.children = append(e.children, &Text{
				start: start,
				end:   ctx.curOffset(),
				value: ctx.src[start:ctx.curOffset()],
			})
		}
	}
}

// parseExprContainer parses a {...} child. The interior is rescanned
// at code level so that elements nested in expressions carry correct
// offsets and stay addressable.
func (ctx *parserCtx) parseExprContainer() (*Expr, error) {
	start := ctx.curOffset()
	ctx.curAdvance(1) // '{'
	children, err := ctx.scanCode('}')
	if err != nil {
		return nil, err
	}
	ctx.curAdvance(1) // '}'
	end := ctx.curOffset()
	return &Expr{
		start:    start,
		end:      end,
		raw:      ctx.src[start:end],
		children: children,
	}, nil
}

func (ctx *parserCtx) parseSpread() (*Attribute, error) {
	start := ctx.curOffset()
	raw, err := ctx.scanBracedValue()
	if err != nil {
		return nil, err
	}
	end := ctx.curOffset()
	return &Attribute{
		spread: true,
		start:  start,
		end:    end,
		value: AttrValue{
			kind:  AttrValueExpr,
			str:   raw,
			start: start,
			end:   end,
		},
	}, nil
}

func (ctx *parserCtx) parseAttribute() (*Attribute, error) {
	a := &Attribute{start: ctx.curOffset()}
	a.name = ctx.parseName()
	nameEnd := ctx.curOffset()

	// '=' may be padded with blanks; without one the attribute is bare
	// and implicitly true
	mark := ctx.cursor.Mark()
	ctx.skipBlanks()
	if ctx.curPeek(1) != '=' {
		ctx.cursor.Reset(mark)
		a.end = nameEnd
		a.value = AttrValue{kind: AttrValueAbsent, start: nameEnd, end: nameEnd}
		return a, nil
	}
	ctx.curAdvance(1)
	ctx.skipBlanks()

	switch c := ctx.curPeek(1); {
	case c == '"' || c == '\'':
		vstart := ctx.curOffset()
		ctx.curAdvance(1)
		istart := ctx.curOffset()
		for ctx.curPeek(1) != c {
			if ctx.curDone() {
				return nil, ctx.error(ErrUnterminatedString)
			}
			// JSX attribute strings have no escapes; the quote itself
			// is the only terminator
			ctx.curAdvance(1)
		}
		iend := ctx.curOffset()
		ctx.curAdvance(1)
		a.value = AttrValue{
			kind:  AttrValueString,
			str:   string(ctx.src[istart:iend]),
			start: vstart,
			end:   ctx.curOffset(),
		}
	case c == '{':
		vstart := ctx.curOffset()
		raw, err := ctx.scanBracedValue()
		if err != nil {
			return nil, err
		}
		a.value = classifyExprValue(raw, vstart, ctx.curOffset())
	default:
		return nil, ctx.error(ErrAttrValueRequired)
	}
	a.end = ctx.curOffset()
	return a, nil
}

// scanBracedValue consumes a balanced {...} run, cursor on the '{',
// and returns it braces included. Strings, template literals, and
// comments inside are honored; nothing is collected.
func (ctx *parserCtx) scanBracedValue() (string, error) {
	start := ctx.curOffset()
	ctx.curAdvance(1) // '{'
	depth := 1
	for {
		if ctx.curDone() {
			return "", ctx.error(ErrUnterminatedExpression)
		}
		switch c := ctx.curPeek(1); {
		case c == '"' || c == '\'':
			if err := ctx.scanString(c); err != nil {
				return "", err
			}
		case c == '`':
			if err := ctx.scanTemplate(); err != nil {
				return "", err
			}
		case c == '/' && ctx.curPeek(2) == '/':
			ctx.skipLineComment()
		case c == '/' && ctx.curPeek(2) == '*':
			if err := ctx.skipBlockComment(); err != nil {
				return "", err
			}
		case c == '{':
			depth++
			ctx.curAdvance(1)
		case c == '}':
			depth--
			ctx.curAdvance(1)
			if depth == 0 {
				return string(ctx.src[start:ctx.curOffset()]), nil
			}
		default:
			ctx.curAdvance(1)
		}
	}
}

// classifyExprValue decides what a braced attribute value is: a
// boolean literal, a lone string literal, or an opaque expression.
func classifyExprValue(raw string, start, end int) AttrValue {
	interior := strings.TrimSpace(raw[1 : len(raw)-1])
	switch interior {
	case "true":
		return AttrValue{kind: AttrValueBool, b: true, start: start, end: end}
	case "false":
		return AttrValue{kind: AttrValueBool, b: false, start: start, end: end}
	}

	if len(interior) >= 2 {
		q := interior[0]
		if (q == '"' || q == '\'' || q == '`') && interior[len(interior)-1] == q {
			inner := interior[1 : len(interior)-1]
			lone := !strings.ContainsRune(inner, rune(q))
			if q == '`' {
				lone = lone && !strings.Contains(inner, "${")
			}
			if lone {
				return AttrValue{kind: AttrValueString, str: inner, start: start, end: end}
			}
		}
	}

	return AttrValue{kind: AttrValueExpr, str: raw, start: start, end: end}
}
