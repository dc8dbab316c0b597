package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Conversion outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeUsageError = "usage_error"
	OutcomeParseError = "parse_error"
	OutcomeWriteError = "write_error"
)

// ConversionCollector bundles Prometheus metrics for converter runs. A CLI
// run is short-lived, so the metrics are exported through the node_exporter
// textfile format rather than an HTTP endpoint.
type ConversionCollector struct {
	gatherer prometheus.Gatherer

	Conversions        *prometheus.CounterVec
	ConversionDuration prometheus.Histogram
	LastSuccess        prometheus.Gauge
}

// NewConversionCollector registers conversion metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewConversionCollector(reg prometheus.Registerer) (*ConversionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llh_to_ecef_conversions_total",
		Help: "Total number of converter runs, labeled by outcome.",
	}, []string{"outcome"})
	conversions, err := registerCounterVec(reg, conversions, "llh_to_ecef_conversions_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "llh_to_ecef_conversion_duration_seconds",
		Help:    "Wall time spent parsing, converting and printing one position.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	}), "llh_to_ecef_conversion_duration_seconds")
	if err != nil {
		return nil, err
	}

	lastSuccess, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "llh_to_ecef_last_success_timestamp_seconds",
		Help: "Unix time of the last successful conversion.",
	}), "llh_to_ecef_last_success_timestamp_seconds")
	if err != nil {
		return nil, err
	}

	return &ConversionCollector{
		gatherer:           gatherer,
		Conversions:        conversions,
		ConversionDuration: duration,
		LastSuccess:        lastSuccess,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *ConversionCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// RecordOutcome counts one run and observes its duration. Successful runs
// also bump the last-success timestamp to now.
func (c *ConversionCollector) RecordOutcome(outcome string, elapsed time.Duration, now time.Time) {
	if c == nil {
		return
	}
	if c.Conversions != nil {
		c.Conversions.WithLabelValues(outcome).Inc()
	}
	if c.ConversionDuration != nil {
		c.ConversionDuration.Observe(elapsed.Seconds())
	}
	if outcome == OutcomeOK && c.LastSuccess != nil {
		c.LastSuccess.Set(float64(now.Unix()))
	}
}

// WriteTextfile writes the gathered metrics to path in the text exposition
// format. The file is written atomically by the Prometheus client.
func (c *ConversionCollector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
