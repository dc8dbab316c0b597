package cli

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/logging"
	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/observability"
)

const usageLine = "Usage: llh-to-ecef lat_deg lon_deg hae_km\n"

func outputLines(t *testing.T, out string) []float64 {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 output lines, got %d: %q", len(lines), out)
	}
	vals := make([]float64, len(lines))
	for i, l := range lines {
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			t.Fatalf("line %d %q is not a number: %v", i, l, err)
		}
		vals[i] = v
	}
	return vals
}

func TestRunPrintsThreeCoordinates(t *testing.T) {
	var stdout bytes.Buffer
	r := NewRunner(&stdout)

	if err := r.Run(context.Background(), []string{"0", "0", "0"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stdout.String(); got != "6378.1363\n0.0\n0.0\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestRunEquator90East(t *testing.T) {
	var stdout bytes.Buffer
	if err := NewRunner(&stdout).Run(context.Background(), []string{"0", "90", "0"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	vals := outputLines(t, stdout.String())
	if abs(vals[0]) > 1e-9 || abs(vals[1]-6378.1363) > 1e-9 || vals[2] != 0 {
		t.Fatalf("equator/90E output = %v", vals)
	}
}

func TestRunNorthPole(t *testing.T) {
	var stdout bytes.Buffer
	if err := NewRunner(&stdout).Run(context.Background(), []string{"90", "0", "0"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	vals := outputLines(t, stdout.String())
	if abs(vals[0]) > 1e-9 || vals[1] != 0 || abs(vals[2]-6356.751600562688) > 1e-9 {
		t.Fatalf("pole output = %v", vals)
	}
}

func TestRunUsageOnWrongArgCount(t *testing.T) {
	for _, args := range [][]string{nil, {"1"}, {"1", "2"}, {"1", "2", "3", "4"}, {"1", "2", "3", "4", "5"}} {
		var stdout bytes.Buffer
		err := NewRunner(&stdout).Run(context.Background(), args)

		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Fatalf("Run(%q) error = %v, want *UsageError", args, err)
		}
		if got := stdout.String(); got != usageLine {
			t.Fatalf("Run(%q) stdout = %q, want usage only", args, got)
		}
		if ExitCode(err) != 0 {
			t.Fatalf("usage error should exit 0")
		}
	}
}

func TestRunUsageShowsProgramName(t *testing.T) {
	var stdout bytes.Buffer
	_ = NewRunner(&stdout, WithProgram("geo")).Run(context.Background(), nil)
	if got := stdout.String(); got != "Usage: geo lat_deg lon_deg hae_km\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestRunParseErrorInEachPosition(t *testing.T) {
	for i := 0; i < 3; i++ {
		args := []string{"1", "2", "3"}
		args[i] = "abc"

		var stdout bytes.Buffer
		err := NewRunner(&stdout).Run(context.Background(), args)

		var parse *ParseError
		if !errors.As(err, &parse) || parse.Index != i {
			t.Fatalf("Run(%q) error = %v, want *ParseError at %d", args, err, i)
		}
		if got := stdout.String(); got != "Error: lat_deg, long_deg and hae_km must be numeric.\n" {
			t.Fatalf("Run(%q) stdout = %q", args, got)
		}
	}
}

func TestRunNegativeTokensAreNumbers(t *testing.T) {
	var stdout bytes.Buffer
	if err := NewRunner(&stdout).Run(context.Background(), []string{"-40", "-105", "-0.5"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	vals := outputLines(t, stdout.String())
	if vals[2] >= 0 {
		t.Fatalf("southern hemisphere z should be negative, got %v", vals)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunWriteFailure(t *testing.T) {
	err := NewRunner(failingWriter{}).Run(context.Background(), []string{"1", "2", "3"})
	if err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Fatalf("expected write error, got %v", err)
	}
	if ExitCode(err) != 1 {
		t.Fatalf("write failure should exit 1")
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewConversionCollector(reg)
	if err != nil {
		t.Fatalf("NewConversionCollector: %v", err)
	}
	fixed := time.Unix(1_760_000_000, 0)
	r := NewRunner(&bytes.Buffer{}, WithMetrics(collector), WithClock(func() time.Time { return fixed }))

	_ = r.Run(context.Background(), []string{"1", "2", "3"})
	_ = r.Run(context.Background(), []string{"1", "2"})
	_ = r.Run(context.Background(), []string{"1", "two", "3"})

	for outcome, want := range map[string]float64{
		observability.OutcomeOK:         1,
		observability.OutcomeUsageError: 1,
		observability.OutcomeParseError: 1,
	} {
		if got := testutil.ToFloat64(collector.Conversions.WithLabelValues(outcome)); got != want {
			t.Errorf("conversions{outcome=%q} = %v, want %v", outcome, got, want)
		}
	}
	if got := testutil.ToFloat64(collector.LastSuccess); got != float64(fixed.Unix()) {
		t.Errorf("last success = %v, want %d", got, fixed.Unix())
	}
}

func TestRunEmitsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := NewRunner(&bytes.Buffer{}, WithTracer(tp.Tracer("test")))
	if err := r.Run(context.Background(), []string{"45", "45", "100"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	names := map[string]bool{}
	for _, s := range sr.Ended() {
		names[s.Name()] = true
	}
	if !names["llh_to_ecef.Run"] || !names["geodesy.ToECEF"] {
		t.Fatalf("expected run and conversion spans, got %v", names)
	}
}

func TestRunLogsToLoggerNotStdout(t *testing.T) {
	var stdout, logs bytes.Buffer
	log := logging.New(logging.Config{Level: "debug", Format: "json", Output: &logs})

	if err := NewRunner(&stdout, WithLogger(log)).Run(context.Background(), []string{"1", "2", "3"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(stdout.String(), "converted position") {
		t.Fatalf("diagnostics leaked to stdout: %q", stdout.String())
	}
	if !strings.Contains(logs.String(), "converted position") || !strings.Contains(logs.String(), "run_id") {
		t.Fatalf("expected debug log with run_id, got %q", logs.String())
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
