package gallium

import (
	"context"
	"log/slog"
)

// Parser turns raw source text into a Document. The zero value is not
// usable; use NewParser. A Parser holds only its options and may be
// reused across goroutines; each Parse builds a fresh context.
type Parser struct {
	options []ParseOption
}

func NewParser(options ...ParseOption) *Parser {
	return &Parser{options: options}
}

// Parse parses src into a fresh Document. Options given here are
// applied after, and override, the ones given to NewParser. The
// context carries tracing only; parsing has no suspension point.
func (p *Parser) Parse(octx context.Context, src []byte, options ...ParseOption) (*Document, error) {
	var fileName string
	for _, option := range append(append([]ParseOption(nil), p.options...), options...) {
		switch option.Ident().(type) {
		case identFileName:
			fileName = option.Value().(string)
		}
	}

	octx, span := StartSpan(octx, "gallium.Parse")
	defer span.End()
	TraceEvent(octx, "parse start",
		slog.String("file", fileName),
		slog.Int("bytes", len(src)),
	)

	var pctx parserCtx
	pctx.init(fileName, src)
	doc, err := pctx.parseDocument()
	if err != nil {
		TraceError(octx, err, "parse failed")
		return nil, err
	}
	TraceEvent(octx, "parse done", slog.Int("toplevel", len(doc.children)))
	return doc, nil
}

// Parse is a convenience for NewParser().Parse(...).
func Parse(octx context.Context, src []byte, options ...ParseOption) (*Document, error) {
	return NewParser().Parse(octx, src, options...)
}
