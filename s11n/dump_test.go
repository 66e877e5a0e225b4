package s11n_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/lestrrat-go/gallium"
	"github.com/lestrrat-go/gallium/s11n"
	"github.com/stretchr/testify/require"
)

func dump(t *testing.T, src string) string {
	t.Helper()
	doc, err := gallium.Parse(context.Background(), []byte(src))
	require.NoError(t, err, "Parse should succeed")

	var buf bytes.Buffer
	var d s11n.Dumper
	require.NoError(t, d.DumpDoc(&buf, doc), "DumpDoc should succeed")
	return buf.String()
}

func TestDumpCanonical(t *testing.T) {
	expected := map[string]string{
		// surrounding code reproduces byte for byte
		`const x = <div className="a">text</div>;`: `const x = <div className="a">text</div>;`,
		// self-closing normalizes to the spaced form
		`<br/>`: `<br />`,
		// bare attributes stay bare, expressions stay raw
		`<Input disabled count={n} onChange={e => e} />`: `<Input disabled count={n} onChange={e => e} />`,
		// single quotes normalize to double where the value allows it
		`<A title='s' />`: `<A title="s" />`,
		// a value with a double quote keeps single quotes
		`<A title='say "hi"' />`: `<A title='say "hi"' />`,
		// boolean literal values
		`<A open={true} closed={false} />`: `<A open={true} closed={false} />`,
		// spread reproduces as written
		`<A {...props} />`: `<A {...props} />`,
		// expression containers between children are opaque
		`<ul>{items.map(f)}</ul>`: `<ul>{items.map(f)}</ul>`,
	}
	for src, want := range expected {
		require.Equal(t, want, dump(t, src), "canonical form of %q", src)
	}
}

func TestDumpNested(t *testing.T) {
	const src = `export const C = () => (
  <section>
    <h1>Title</h1>
    {cond && <Badge tone="info" />}
  </section>
);`
	got := dump(t, src)
	require.Equal(t, src, got, "already-canonical source survives unchanged")
}

func TestDumpIdempotent(t *testing.T) {
	const src = `const x = <div a='1' b={v}><i/>mid</div>;`
	once := dump(t, src)
	require.Equal(t, once, dump(t, once), "dumping canonical output is a fixed point")
}
