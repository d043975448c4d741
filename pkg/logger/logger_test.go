package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/adposting/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "DEBUG", want: slog.LevelDebug},
		{input: "warn", want: slog.LevelWarn},
		{input: "Warning", want: slog.LevelWarn},
		{input: " error ", want: slog.LevelError},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew_ServiceAttributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.New(&buf, logger.Options{Format: "json", Service: "adpost", Version: "1.2.3"})
	l.Info("submitted", "creation_id", "c-1")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "adpost", rec["service"])
	assert.Equal(t, "1.2.3", rec["version"])
	assert.Equal(t, "c-1", rec["creation_id"])
	assert.NotContains(t, rec, "trace_id")
}

func TestNew_TextFormatOmitsEmptyService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.New(&buf, logger.Options{})
	l.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=hello")
	assert.NotContains(t, out, "service=")
}

func TestNew_TraceContext(t *testing.T) {
	t.Parallel()

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	var buf bytes.Buffer
	l := logger.New(&buf, logger.Options{Format: "json"}).With("component", "client")
	l.InfoContext(ctx, "api request")

	rec := decodeLine(t, &buf)
	assert.Equal(t, traceID.String(), rec["trace_id"])
	assert.Equal(t, spanID.String(), rec["span_id"])
	assert.Equal(t, "client", rec["component"])
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		level      string
		log        func(*slog.Logger)
		wantOutput bool
	}{
		{name: "debug visible at debug", level: "debug", log: func(l *slog.Logger) { l.Debug("x") }, wantOutput: true},
		{name: "debug hidden at info", level: "info", log: func(l *slog.Logger) { l.Debug("x") }},
		{name: "info hidden at warning", level: "warning", log: func(l *slog.Logger) { l.Info("x") }},
		{name: "error visible at warn", level: "warn", log: func(l *slog.Logger) { l.Error("x") }, wantOutput: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.log(logger.New(&buf, logger.Options{Level: tt.level}))
			assert.Equal(t, tt.wantOutput, buf.Len() > 0)
		})
	}
}
