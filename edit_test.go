package gallium_test

import (
	"context"
	"strings"
	"testing"

	"github.com/lestrrat-go/gallium"
	"github.com/stretchr/testify/require"
)

func applyEdit(t *testing.T, src string, line, col int, op gallium.Operation, options ...gallium.EditOption) *gallium.EditResult {
	t.Helper()
	res, err := gallium.Edit(context.Background(), []byte(src),
		gallium.SourceLocation{FileName: "test.tsx", Line: line, Column: col},
		op, options...)
	require.NoError(t, err, "Edit should succeed")
	require.NotNil(t, res, "result present")
	return res
}

func TestUpdateAttributeInPlace(t *testing.T) {
	const src = `const b = <Button variant="solid" size="md" />;`
	res := applyEdit(t, src, 1, 11, gallium.UpdateAttribute{
		Name:  "variant",
		Value: gallium.StringValue("outline"),
	})
	require.Equal(t, `const b = <Button variant="outline" size="md" />;`, string(res.Source))
	require.Equal(t, gallium.EditModeFull, res.Mode, "full capability")
	require.Nil(t, res.Location, "attribute edits do not relocate")
}

func TestUpdateAttributeCreate(t *testing.T) {
	res := applyEdit(t, `<Button size="md" />`, 1, 1, gallium.UpdateAttribute{
		Name:  "title",
		Value: gallium.StringValue("Hi"),
	})
	require.Equal(t, `<Button title="Hi" size="md" />`, string(res.Source),
		"new attribute lands right after the tag name")
}

func TestUpdateAttributeBool(t *testing.T) {
	res := applyEdit(t, `<Input />`, 1, 1, gallium.UpdateAttribute{
		Name:  "disabled",
		Value: gallium.BoolValue(true),
	})
	require.Equal(t, `<Input disabled />`, string(res.Source), "true is the bare name")

	res = applyEdit(t, string(res.Source), 1, 1, gallium.UpdateAttribute{
		Name:  "disabled",
		Value: gallium.BoolValue(false),
	})
	require.Equal(t, `<Input disabled={false} />`, string(res.Source), "false stays explicit")
}

func TestUpdateAttributeQuoting(t *testing.T) {
	expected := map[string]string{
		`plain`:     `title="plain"`,
		`say "hi"`:  `title='say "hi"'`,
		`it's`:      `title="it's"`,
		`"x" 'y'`:   `title="&quot;x&quot; 'y'"`,
	}
	for value, rendered := range expected {
		res := applyEdit(t, `<A />`, 1, 1, gallium.UpdateAttribute{
			Name:  "title",
			Value: gallium.StringValue(value),
		})
		require.Equal(t, `<A `+rendered+` />`, string(res.Source), "quoting of %q", value)
	}
}

func TestRemoveAttribute(t *testing.T) {
	res := applyEdit(t, `<Card title="t" variant="solid" />`, 1, 1,
		gallium.RemoveAttribute{Name: "title"})
	require.Equal(t, `<Card variant="solid" />`, string(res.Source),
		"removal absorbs the leading space")

	_, err := gallium.Edit(context.Background(), []byte(`<Card />`),
		gallium.SourceLocation{Line: 1, Column: 1},
		gallium.RemoveAttribute{Name: "title"})
	require.Error(t, err, "removing an absent attribute fails")

	var anf gallium.ErrAttrNotFound
	require.ErrorAs(t, err, &anf)
	require.Equal(t, "title", anf.Name)
}

func TestInsertChild(t *testing.T) {
	const src = "<ul>\n  <li>a</li>\n</ul>"

	t.Run("end", func(t *testing.T) {
		res := applyEdit(t, src, 1, 1, gallium.InsertChild{
			Markup:   "  <li>b</li>\n",
			Position: gallium.ChildEnd,
		})
		require.Equal(t, "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>", string(res.Source))
	})

	t.Run("start", func(t *testing.T) {
		res := applyEdit(t, src, 1, 1, gallium.InsertChild{
			Markup:   "<li>z</li>",
			Position: gallium.ChildStart,
		})
		require.Equal(t, "<ul><li>z</li>\n  <li>a</li>\n</ul>", string(res.Source))
	})

	t.Run("index", func(t *testing.T) {
		res := applyEdit(t, `<ul><li>a</li><li>c</li></ul>`, 1, 1, gallium.InsertChild{
			Markup:   "<li>b</li>",
			Position: gallium.ChildIndex,
			Index:    1,
		})
		require.Equal(t, `<ul><li>a</li><li>b</li><li>c</li></ul>`, string(res.Source))
	})

	t.Run("index past end appends", func(t *testing.T) {
		res := applyEdit(t, `<ul><li>a</li></ul>`, 1, 1, gallium.InsertChild{
			Markup:   "<li>b</li>",
			Position: gallium.ChildIndex,
			Index:    9,
		})
		require.Equal(t, `<ul><li>a</li><li>b</li></ul>`, string(res.Source))
	})

	t.Run("self-closing converts to container", func(t *testing.T) {
		res := applyEdit(t, `<Foo />`, 1, 1, gallium.InsertChild{
			Markup:   "<Bar />",
			Position: gallium.ChildEnd,
		})
		require.Equal(t, `<Foo><Bar /></Foo>`, string(res.Source))
	})
}

func TestUpdateText(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		res := applyEdit(t, `<h1>Old Title</h1>`, 1, 1, gallium.UpdateText{Text: "New"})
		require.Equal(t, `<h1>New</h1>`, string(res.Source))
	})

	t.Run("whitespace preserved", func(t *testing.T) {
		res := applyEdit(t, "<p>\n  old text\n</p>", 1, 1, gallium.UpdateText{Text: "New"})
		require.Equal(t, "<p>\n  New\n</p>", string(res.Source),
			"indentation around the text survives")
	})

	t.Run("mixed children", func(t *testing.T) {
		res := applyEdit(t, `<div>prefix<b>x</b></div>`, 1, 1, gallium.UpdateText{Text: "New"})
		require.Equal(t, `<div>New<b>x</b></div>`, string(res.Source),
			"only the first text child changes")
	})

	t.Run("no text child", func(t *testing.T) {
		res := applyEdit(t, `<div><b>x</b></div>`, 1, 1, gallium.UpdateText{Text: "New"})
		require.Equal(t, `<div>New</div>`, string(res.Source),
			"the whole between-tags region is replaced")
	})

	t.Run("self-closing", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<br />`),
			gallium.SourceLocation{Line: 1, Column: 1}, gallium.UpdateText{Text: "x"})
		require.ErrorIs(t, err, gallium.ErrNoClosingTag)
	})
}

func TestDeleteElement(t *testing.T) {
	const src = "<div>\n  <span>x</span>\n  <b>y</b>\n</div>"
	res := applyEdit(t, src, 2, 3, gallium.DeleteElement{})
	require.Equal(t, "<div>\n  <b>y</b>\n</div>", string(res.Source),
		"indentation and the trailing newline go with the element")

	res = applyEdit(t, `<A/><B/>`, 1, 1, gallium.DeleteElement{})
	require.Equal(t, `<B/>`, string(res.Source), "inline delete leaves the sibling alone")
}

func TestSwapSibling(t *testing.T) {
	t.Run("prev", func(t *testing.T) {
		const src = `const x = <main><A/><B/><C/></main>;`
		res := applyEdit(t, src, 1, 21, gallium.SwapSibling{Direction: gallium.DirectionPrev})
		require.Equal(t, `const x = <main><B/><A/><C/></main>;`, string(res.Source),
			"only the pair's span changes")
		require.NotNil(t, res.Location, "swap relocates")
		require.Equal(t, 1, res.Location.Line)
		require.Equal(t, 17, res.Location.Column, "fresh address of the swapped element")
	})

	t.Run("involution", func(t *testing.T) {
		const src = "<A/>\n<B/>\n"
		res := applyEdit(t, src, 1, 1, gallium.SwapSibling{Direction: gallium.DirectionNext})
		require.Equal(t, "<B/>\n<A/>\n", string(res.Source))
		require.NotNil(t, res.Location)

		back := applyEdit(t, string(res.Source), res.Location.Line, res.Location.Column,
			gallium.SwapSibling{Direction: gallium.DirectionPrev})
		require.Equal(t, src, string(back.Source), "swapping back restores the original")
	})

	t.Run("no sibling", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<main><A/></main>`),
			gallium.SourceLocation{Line: 1, Column: 7},
			gallium.SwapSibling{Direction: gallium.DirectionNext})
		require.ErrorIs(t, err, gallium.ErrNoSibling)
		require.Equal(t, gallium.ReasonNoSiblingInDirection, gallium.Reason(err))
	})

	t.Run("text between blocks the swap", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<main><A/>text<B/></main>`),
			gallium.SourceLocation{Line: 1, Column: 7},
			gallium.SwapSibling{Direction: gallium.DirectionNext})
		require.ErrorIs(t, err, gallium.ErrNoSibling)
	})

	t.Run("expression between blocks the swap", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<main><A/>{cond}<B/></main>`),
			gallium.SourceLocation{Line: 1, Column: 7},
			gallium.SwapSibling{Direction: gallium.DirectionNext})
		require.ErrorIs(t, err, gallium.ErrNoSibling)
	})

	t.Run("miss is stale, not absent", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<A/><B/>`),
			gallium.SourceLocation{Line: 5, Column: 5},
			gallium.SwapSibling{Direction: gallium.DirectionPrev})
		require.ErrorIs(t, err, gallium.ErrStaleLocation)
		require.Equal(t, gallium.ReasonStaleSourceLocation, gallium.Reason(err))

		_, err = gallium.Edit(context.Background(), []byte(`<A/><B/>`),
			gallium.SourceLocation{Line: 5, Column: 5},
			gallium.UpdateText{Text: "x"})
		require.ErrorIs(t, err, gallium.ErrNotFound, "other operations report NotFound")
		require.Equal(t, gallium.ReasonNotFound, gallium.Reason(err))
	})
}

func TestMoveElement(t *testing.T) {
	t.Run("after", func(t *testing.T) {
		res := applyEdit(t, `<Icon/><div></div>`, 1, 1, gallium.MoveElement{
			Target:   gallium.SourceLocation{Line: 1, Column: 8},
			Position: gallium.MoveAfter,
		})
		require.Equal(t, `<div></div><Icon/>`, string(res.Source))
		require.NotNil(t, res.Location, "move relocates")
		require.Equal(t, 12, res.Location.Column, "address reflects the removal upstream")
	})

	t.Run("before", func(t *testing.T) {
		res := applyEdit(t, `<main><A/><B/></main>`, 1, 11, gallium.MoveElement{
			Target:   gallium.SourceLocation{Line: 1, Column: 7},
			Position: gallium.MoveBefore,
		})
		require.Equal(t, `<main><B/><A/></main>`, string(res.Source))
		require.Equal(t, 7, res.Location.Column)
	})

	t.Run("inside container", func(t *testing.T) {
		res := applyEdit(t, `<List></List><Item/>`, 1, 14, gallium.MoveElement{
			Target:   gallium.SourceLocation{Line: 1, Column: 1},
			Position: gallium.MoveInside,
		})
		require.Equal(t, `<List><Item/></List>`, string(res.Source))
		require.Equal(t, 7, res.Location.Column)
	})

	t.Run("inside self-closing target", func(t *testing.T) {
		res := applyEdit(t, `<List/><Item/>`, 1, 8, gallium.MoveElement{
			Target:   gallium.SourceLocation{Line: 1, Column: 1},
			Position: gallium.MoveInside,
		})
		require.Equal(t, `<List><Item/></List>`, string(res.Source),
			"target converts to a container")
		require.Equal(t, 7, res.Location.Column)
	})

	t.Run("out of its parent", func(t *testing.T) {
		res := applyEdit(t, `<div><Icon/></div>`, 1, 6, gallium.MoveElement{
			Target:   gallium.SourceLocation{Line: 1, Column: 1},
			Position: gallium.MoveAfter,
		})
		require.Equal(t, `<div></div><Icon/>`, string(res.Source))
		require.Equal(t, 12, res.Location.Column)
	})

	t.Run("onto itself", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<A/><B/>`),
			gallium.SourceLocation{Line: 1, Column: 1},
			gallium.MoveElement{
				Target:   gallium.SourceLocation{Line: 1, Column: 1},
				Position: gallium.MoveBefore,
			})
		require.ErrorIs(t, err, gallium.ErrStructuralInvalid, "source == target is a cycle")
	})

	t.Run("own subtree", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<div><span/></div>`),
			gallium.SourceLocation{Line: 1, Column: 1},
			gallium.MoveElement{
				Target:   gallium.SourceLocation{Line: 1, Column: 6},
				Position: gallium.MoveInside,
			})
		require.ErrorIs(t, err, gallium.ErrStructuralInvalid)
		require.Equal(t, gallium.ReasonStructuralInvalid, gallium.Reason(err))
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := gallium.Edit(context.Background(), []byte(`<A/><B/>`),
			gallium.SourceLocation{Line: 1, Column: 1},
			gallium.MoveElement{
				Target:   gallium.SourceLocation{Line: 7, Column: 7},
				Position: gallium.MoveBefore,
			})
		require.ErrorIs(t, err, gallium.ErrNotFound)
	})
}

func TestEditSafetyGate(t *testing.T) {
	t.Run("opaque value degrades to limited", func(t *testing.T) {
		res := applyEdit(t, `<Button onClick={fn} label="x" />`, 1, 1,
			gallium.UpdateAttribute{Name: "onClick", Value: gallium.StringValue("go")})
		require.Equal(t, gallium.EditModeLimited, res.Mode)
		require.Nil(t, res.Source, "nothing written")
	})

	t.Run("spread degrades to read-only", func(t *testing.T) {
		res := applyEdit(t, `<Button {...props} label="x" />`, 1, 1,
			gallium.UpdateAttribute{Name: "label", Value: gallium.StringValue("y")})
		require.Equal(t, gallium.EditModeReadOnly, res.Mode)
		require.Nil(t, res.Source)
	})

	t.Run("force overrides", func(t *testing.T) {
		res := applyEdit(t, `<Button onClick={fn} label="x" />`, 1, 1,
			gallium.UpdateAttribute{Name: "onClick", Value: gallium.StringValue("go")},
			gallium.WithForce())
		require.Equal(t, `<Button onClick="go" label="x" />`, string(res.Source))

		res = applyEdit(t, `<Button onClick={fn} label="x" />`, 1, 1,
			gallium.RemoveAttribute{Name: "onClick"},
			gallium.WithForce())
		require.Equal(t, `<Button label="x" />`, string(res.Source))
	})

	t.Run("non-attribute operations are not gated", func(t *testing.T) {
		res := applyEdit(t, `<Button {...props}>old</Button>`, 1, 1,
			gallium.UpdateText{Text: "new"})
		require.Equal(t, `<Button {...props}>new</Button>`, string(res.Source))
	})
}

func TestEditNoOpIdempotent(t *testing.T) {
	const src = `const a = <A title="x" />;`
	res := applyEdit(t, src, 1, 11, gallium.UpdateAttribute{
		Name:  "title",
		Value: gallium.StringValue("x"),
	})
	require.Equal(t, src, string(res.Source), "same value writes the same bytes")
}

func TestEditLocality(t *testing.T) {
	const src = `import { A } from "./a";

export function App() {
  return <A title="old" />;
}
`
	res := applyEdit(t, src, 4, 10, gallium.UpdateAttribute{
		Name:  "title",
		Value: gallium.StringValue("new"),
	})
	require.Equal(t, strings.Replace(src, `"old"`, `"new"`, 1), string(res.Source),
		"every byte outside the touched range is untouched")
}

func TestEditRoundTrip(t *testing.T) {
	res := applyEdit(t, `const a = <A title="x" />;`, 1, 11, gallium.UpdateAttribute{
		Name:  "title",
		Value: gallium.StringValue("longer value"),
	})

	doc, err := gallium.Parse(context.Background(), res.Source)
	require.NoError(t, err, "the edited source parses again")

	el, err := gallium.Locate(doc, gallium.SourceLocation{Line: 1, Column: 11})
	require.NoError(t, err, "the element stays addressable")
	a, ok := el.Attribute("title")
	require.True(t, ok)
	require.Equal(t, "longer value", a.Value().Literal())
}

func TestEditMalformedSource(t *testing.T) {
	_, err := gallium.Edit(context.Background(), []byte(`<div`),
		gallium.SourceLocation{Line: 1, Column: 1}, gallium.DeleteElement{})
	require.Error(t, err, "malformed source never gets edited")
	require.Equal(t, gallium.ReasonParseError, gallium.Reason(err))
}
