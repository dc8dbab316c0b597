package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", String("k", "v"), Float64("x_km", 1.5))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if rec["msg"] != "shown" || rec["k"] != "v" || rec["x_km"] != 1.5 {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestErrField(t *testing.T) {
	f := Err(errors.New("boom"))
	if f.Key != "error" || f.Value != "boom" {
		t.Fatalf("Err field = %+v", f)
	}
	if f := Err(nil); f.Value != nil {
		t.Fatalf("Err(nil) value = %v, want nil", f.Value)
	}
}

func TestWithRunLoggerReusesExistingID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "debug", Format: "json", Output: &buf})

	ctx := ContextWithRunID(context.Background(), "abc123")
	ctx, log := WithRunLogger(ctx, base)
	if got := RunIDFromContext(ctx); got != "abc123" {
		t.Fatalf("run id = %q, want abc123", got)
	}
	log.Debug(ctx, "hello")
	if !strings.Contains(buf.String(), `"run_id":"abc123"`) {
		t.Fatalf("log output missing run_id: %s", buf.String())
	}
}

func TestWithRunLoggerGeneratesID(t *testing.T) {
	ctx, log := WithRunLogger(context.Background(), nil)
	if log == nil {
		t.Fatalf("expected a logger")
	}
	if id := RunIDFromContext(ctx); len(id) != 16 {
		t.Fatalf("generated run id %q, want 16 hex chars", id)
	}
}

func TestNewFromEnvDefaultsToWarn(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "text")

	var buf bytes.Buffer
	log := NewFromEnv(&buf)
	log.Info(context.Background(), "quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be suppressed by default, got %q", buf.String())
	}
	log.Warn(context.Background(), "loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("warn should be emitted, got %q", buf.String())
	}
}
