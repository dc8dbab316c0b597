package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/majgaonkar508/aoe-4414-a02-q10/geodesy"
	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/logging"
	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/observability"
)

// DefaultProgram is used in the usage line when no program name is set.
const DefaultProgram = "llh-to-ecef"

const parseErrorMessage = "Error: lat_deg, long_deg and hae_km must be numeric."

// Runner performs one conversion run. Stdout receives only the usage line,
// the parse error line, or the three coordinates.
type Runner struct {
	converter geodesy.Converter
	stdout    io.Writer
	program   string
	log       logging.Logger
	metrics   *observability.ConversionCollector
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgram sets the program name shown in the usage line.
func WithProgram(name string) Option {
	return func(r *Runner) {
		if name != "" {
			r.program = name
		}
	}
}

// WithLogger routes diagnostics to log.
func WithLogger(log logging.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics records each run's outcome on c.
func WithMetrics(c *observability.ConversionCollector) Option {
	return func(r *Runner) { r.metrics = c }
}

// WithTracer wraps each run in a span from t.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithClock overrides the time source used for metrics.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner returns a Runner writing results to stdout.
func NewRunner(stdout io.Writer, opts ...Option) *Runner {
	r := &Runner{
		converter: geodesy.NewConverter(),
		stdout:    stdout,
		program:   DefaultProgram,
		log:       logging.Noop(),
		tracer:    noop.NewTracerProvider().Tracer(""),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run parses args, converts the position and prints x, y and z, one per
// line. Usage and parse errors print their message and are returned; no
// coordinates are printed in that case.
func (r *Runner) Run(ctx context.Context, args []string) (err error) {
	start := r.now()
	ctx, log := logging.WithRunLogger(ctx, r.log)
	ctx, span := r.tracer.Start(ctx, "llh_to_ecef.Run",
		trace.WithAttributes(attribute.Int("args.count", len(args))))
	defer func() {
		outcome := outcomeOf(err)
		span.SetAttributes(attribute.String("outcome", outcome))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		end := r.now()
		r.metrics.RecordOutcome(outcome, end.Sub(start), end)
	}()

	pos, err := ParseArgs(args)
	if err != nil {
		var usage *UsageError
		var parse *ParseError
		switch {
		case errors.As(err, &usage):
			log.Debug(ctx, "wrong argument count", logging.Int("got", usage.Got))
			if _, werr := fmt.Fprintf(r.stdout, "Usage: %s lat_deg lon_deg hae_km\n", r.program); werr != nil {
				return fmt.Errorf("write usage: %w", werr)
			}
		case errors.As(err, &parse):
			log.Debug(ctx, "non-numeric argument",
				logging.String("argument", parse.Name),
				logging.String("value", parse.Value),
				logging.Err(parse.Err),
			)
			if _, werr := fmt.Fprintln(r.stdout, parseErrorMessage); werr != nil {
				return fmt.Errorf("write parse error: %w", werr)
			}
		}
		return err
	}

	out := r.convert(ctx, pos)
	log.Debug(ctx, "converted position",
		logging.Float64("lat_deg", pos.LatitudeDeg),
		logging.Float64("lon_deg", pos.LongitudeDeg),
		logging.Float64("hae_km", pos.HeightKm),
		logging.Float64("r_x_km", out.XKm),
		logging.Float64("r_y_km", out.YKm),
		logging.Float64("r_z_km", out.ZKm),
	)

	if _, err := fmt.Fprintf(r.stdout, "%s\n%s\n%s\n",
		FormatCoordinate(out.XKm),
		FormatCoordinate(out.YKm),
		FormatCoordinate(out.ZKm),
	); err != nil {
		log.Error(ctx, "failed to write result", logging.Err(err))
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (r *Runner) convert(ctx context.Context, pos geodesy.GeodeticPosition) geodesy.EcefPosition {
	_, span := r.tracer.Start(ctx, "geodesy.ToECEF", trace.WithAttributes(
		attribute.Float64("lat_deg", pos.LatitudeDeg),
		attribute.Float64("lon_deg", pos.LongitudeDeg),
		attribute.Float64("hae_km", pos.HeightKm),
	))
	defer span.End()

	out := r.converter.ToECEF(pos)
	span.SetAttributes(
		attribute.Float64("r_x_km", out.XKm),
		attribute.Float64("r_y_km", out.YKm),
		attribute.Float64("r_z_km", out.ZKm),
	)
	return out
}

func outcomeOf(err error) string {
	var usage *UsageError
	var parse *ParseError
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.As(err, &usage):
		return observability.OutcomeUsageError
	case errors.As(err, &parse):
		return observability.OutcomeParseError
	default:
		return observability.OutcomeWriteError
	}
}
