// Package s11n serializes a parsed gallium tree back to markup text.
// The edit path never goes through here (edits slice the original
// bytes directly), but round-trip tests, the CLI's --dump mode, and
// debugging all want a canonical rendering of what the parser saw.
package s11n

import (
	"io"
	"strings"

	"github.com/lestrrat-go/gallium"
	"github.com/lestrrat-go/gallium/internal/pool"
)

type Dumper struct{}

func (d *Dumper) DumpDoc(out io.Writer, doc *gallium.Document) error {
	for _, child := range doc.Children() {
		if err := d.DumpNode(out, child); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) DumpNode(out io.Writer, n gallium.Node) error {
	switch n := n.(type) {
	case *gallium.Document:
		return d.DumpDoc(out, n)
	case *gallium.Text:
		_, err := out.Write(n.Value())
		return err
	case *gallium.Expr:
		// opaque: reproduce the container byte for byte
		_, err := out.Write(n.Raw())
		return err
	case *gallium.Element:
		return d.dumpElement(out, n)
	}
	return nil
}

func (d *Dumper) dumpElement(out io.Writer, e *gallium.Element) error {
	if _, err := io.WriteString(out, "<"+e.Name()); err != nil {
		return err
	}
	for _, a := range e.Attributes() {
		if _, err := io.WriteString(out, " "); err != nil {
			return err
		}
		if err := d.dumpAttr(out, a); err != nil {
			return err
		}
	}

	if e.SelfClosing() {
		_, err := io.WriteString(out, " />")
		return err
	}

	if _, err := io.WriteString(out, ">"); err != nil {
		return err
	}
	for _, child := range e.Children() {
		if err := d.DumpNode(out, child); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "</"+e.Name()+">")
	return err
}

func (d *Dumper) dumpAttr(out io.Writer, a *gallium.Attribute) error {
	v := a.Value()
	if a.Spread() {
		_, err := io.WriteString(out, v.Source())
		return err
	}
	switch v.Kind() {
	case gallium.AttrValueAbsent:
		_, err := io.WriteString(out, a.Name())
		return err
	case gallium.AttrValueBool:
		lit := "false"
		if v.Bool() {
			lit = "true"
		}
		_, err := io.WriteString(out, a.Name()+"={"+lit+"}")
		return err
	case gallium.AttrValueString:
		buf := pool.ByteSlice().GetCapacity(len(a.Name()) + len(v.Literal()) + 3)
		defer pool.ByteSlice().Put(buf)
		buf = append(buf, a.Name()...)
		buf = append(buf, '=')
		buf = appendQuoted(buf, v.Literal())
		_, err := out.Write(buf)
		return err
	}
	_, err := io.WriteString(out, a.Name()+"="+v.Source())
	return err
}

// appendQuoted picks whichever quote style the value does not contain;
// a value carrying both falls back to double quotes with the entity
// escape.
func appendQuoted(buf []byte, s string) []byte {
	hasDouble := strings.Contains(s, `"`)
	hasSingle := strings.Contains(s, `'`)
	switch {
	case hasDouble && hasSingle:
		buf = append(buf, '"')
		buf = append(buf, strings.ReplaceAll(s, `"`, "&quot;")...)
		return append(buf, '"')
	case hasDouble:
		buf = append(buf, '\'')
		buf = append(buf, s...)
		return append(buf, '\'')
	}
	buf = append(buf, '"')
	buf = append(buf, s...)
	return append(buf, '"')
}
