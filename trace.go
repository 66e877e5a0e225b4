//go:build !notrace

package gallium

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime"
	"time"
)

type traceLoggerKey struct{}
type spanIDKey struct{}

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

// TracingEnabled reports whether this build carries tracing at all.
// Compile with -tags notrace to turn every call in this file into a
// no-op.
var TracingEnabled = true

// SetTracingEnabled toggles tracing at runtime without rebuilding.
func SetTracingEnabled(enabled bool) {
	TracingEnabled = enabled
}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
	Tags     map[string]string
}

// Span is the handle returned by StartSpan; End logs the span's
// duration. The interface provides the upgrade path for future
// OpenTelemetry compatibility.
type Span interface {
	End()
}

type activeSpan struct {
	ctx  context.Context
	info *SpanInfo
}

func (s *activeSpan) End() {
	if s.info == nil {
		return
	}
	tlog := getTraceLogFromContext(s.ctx)
	tlog.LogAttrs(s.ctx, slog.LevelDebug, "END "+s.info.Name,
		slog.String("span_id", s.info.ID),
		slog.Duration("took", time.Since(s.info.Start)),
	)
}

// WithTraceLogger adds a trace logger to the context. If the context
// already has one, the context is returned as is.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}
	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	if !TracingEnabled {
		return nullLogger
	}
	if tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		// Retrieve the function name of the caller for tracing
		pc, _, _, ok := runtime.Caller(2)
		if ok {
			fn := runtime.FuncForPC(pc)
			if fn != nil {
				tlog = tlog.With(slog.String("fn", fn.Name()))
			}
		}
		return tlog
	}
	return nullLogger
}

// WithSpan records a new span in the context and returns its info.
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	info := &SpanInfo{
		ID:    generateSpanID(),
		Name:  name,
		Start: time.Now(),
	}
	if parent, ok := ctx.Value(spanIDKey{}).(string); ok {
		info.ParentID = parent
	}
	return context.WithValue(ctx, spanIDKey{}, info.ID), info
}

// StartSpan opens a span and logs its START line. The returned Span's
// End logs the matching END line with the elapsed time.
func StartSpan(ctx context.Context, spanName string) (context.Context, Span) {
	ctx, info := WithSpan(ctx, spanName)
	tlog := getTraceLogFromContext(ctx)
	attrs := []slog.Attr{slog.String("span_id", info.ID)}
	if info.ParentID != "" {
		attrs = append(attrs, slog.String("parent_id", info.ParentID))
	}
	tlog.LogAttrs(ctx, slog.LevelDebug, "START "+spanName, attrs...)
	return ctx, &activeSpan{ctx: ctx, info: info}
}

// TraceEvent logs a structured event within the current span.
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	tlog := getTraceLogFromContext(ctx)
	if id, ok := ctx.Value(spanIDKey{}).(string); ok {
		attrs = append(attrs, slog.String("span_id", id))
	}
	tlog.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// TraceError logs an error within the current span.
func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	tlog := getTraceLogFromContext(ctx)
	if id, ok := ctx.Value(spanIDKey{}).(string); ok {
		attrs = append(attrs, slog.String("span_id", id))
	}
	attrs = append(attrs, slog.Any("error", err))
	tlog.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// generateSpanID returns a 16 hex character random span ID.
func generateSpanID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(b[:])
}
