// Command llh-to-ecef prints the ECEF position, in kilometres, of a geodetic
// latitude, longitude and height above the ellipsoid.
//
//	llh-to-ecef <lat_deg> <lon_deg> <hae_km>
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/cli"
	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/logging"
	"github.com/majgaonkar508/aoe-4414-a02-q10/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the ambient settings for one run. None of them change what
// is printed on stdout.
type Config struct {
	Program         string
	MetricsTextfile string
	Tracing         observability.TracingConfig
}

func configFromEnv(argv0 string) Config {
	return Config{
		Program:         filepath.Base(argv0),
		MetricsTextfile: os.Getenv("LLH_METRICS_TEXTFILE"),
		Tracing:         observability.TracingConfigFromEnv(),
	}
}

func main() {
	log := logging.NewFromEnv(os.Stderr)
	cfg := configFromEnv(os.Args[0])
	os.Exit(run(context.Background(), cfg, log, os.Args[1:], os.Stdout))
}

func run(ctx context.Context, cfg Config, log logging.Logger, args []string, stdout io.Writer) int {
	shutdown, err := observability.InitTracing(ctx, cfg.Tracing, log)
	if err != nil {
		log.Warn(ctx, "tracing unavailable", logging.Err(err))
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	opts := []cli.Option{
		cli.WithProgram(cfg.Program),
		cli.WithLogger(log),
		cli.WithTracer(observability.Tracer()),
	}

	var collector *observability.ConversionCollector
	if cfg.MetricsTextfile != "" {
		collector, err = observability.NewConversionCollector(prometheus.NewRegistry())
		if err != nil {
			log.Warn(ctx, "metrics unavailable", logging.Err(err))
		} else {
			opts = append(opts, cli.WithMetrics(collector))
		}
	}

	runErr := cli.NewRunner(stdout, opts...).Run(ctx, args)

	if err := collector.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Warn(ctx, "failed to write metrics", logging.String("path", cfg.MetricsTextfile), logging.Err(err))
	}
	return cli.ExitCode(runErr)
}
