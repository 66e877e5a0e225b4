//go:build !notrace

package gallium

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func traceBuffer() (*bytes.Buffer, context.Context) {
	var buf bytes.Buffer
	tlog := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &buf, WithTraceLogger(context.Background(), tlog)
}

func TestStartSpanLogsStartAndEnd(t *testing.T) {
	buf, ctx := traceBuffer()

	_, span := StartSpan(ctx, "test.op")
	span.End()

	out := buf.String()
	require.Contains(t, out, "START test.op", "span opening logged")
	require.Contains(t, out, "END test.op", "span closing logged")
	require.Contains(t, out, "span_id=", "span carries its id")
	require.Contains(t, out, "took=", "END carries the elapsed time")
}

func TestSpanParentChain(t *testing.T) {
	buf, ctx := traceBuffer()

	ctx, outer := StartSpan(ctx, "outer")
	_, inner := StartSpan(ctx, "inner")
	inner.End()
	outer.End()

	require.Contains(t, buf.String(), "parent_id=", "nested span records its parent")
}

func TestTraceEventCarriesSpanID(t *testing.T) {
	buf, ctx := traceBuffer()

	ctx, span := StartSpan(ctx, "op")
	defer span.End()
	TraceEvent(ctx, "something happened", slog.Int("n", 42))

	out := buf.String()
	require.Contains(t, out, "something happened")
	require.Contains(t, out, "n=42")
	require.Contains(t, out, "span_id=")
}

func TestTracingDisabled(t *testing.T) {
	buf, ctx := traceBuffer()

	SetTracingEnabled(false)
	defer SetTracingEnabled(true)

	_, span := StartSpan(ctx, "quiet")
	TraceEvent(ctx, "still quiet")
	span.End()

	require.Empty(t, buf.String(), "nothing logged while tracing is off")
}

func TestWithTraceLoggerKeepsExisting(t *testing.T) {
	buf, ctx := traceBuffer()

	var other bytes.Buffer
	ctx = WithTraceLogger(ctx, slog.New(slog.NewTextHandler(&other, nil)))

	_, span := StartSpan(ctx, "op")
	span.End()

	require.NotEmpty(t, buf.String(), "the first logger stays bound")
	require.Empty(t, other.String(), "a second logger does not replace it")
}

func TestEditEmitsTrace(t *testing.T) {
	buf, ctx := traceBuffer()

	_, err := Edit(ctx, []byte(`<A title="x" />`),
		SourceLocation{Line: 1, Column: 1},
		UpdateAttribute{Name: "title", Value: StringValue("y")})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "START gallium.Edit")
	require.Contains(t, out, "END gallium.Edit")
	require.Contains(t, out, "edit done")
}
