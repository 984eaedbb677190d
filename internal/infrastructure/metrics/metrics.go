// Package metrics records validation activity as Prometheus metrics and
// exports them in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reglet-dev/drillspec/internal/application/ports"
	"github.com/reglet-dev/drillspec/internal/domain/execution"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "drillspec"

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder implements ports.MetricsRecorder on a private registry, so
// several runs in one process never share counters by accident.
type Recorder struct {
	registry *prometheus.Registry

	setsTotal       *prometheus.CounterVec
	violationsTotal *prometheus.CounterVec
	setDuration     prometheus.Histogram
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

// NewRecorder creates a recorder whose metric names start with namespace.
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		setsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sets_validated_total",
				Help:      "Total number of candidate parameter sets validated",
			},
			[]string{"status"}, // pass or fail
		),

		violationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Total number of violations reported",
			},
			[]string{"field", "kind"},
		),

		setDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "set_validation_duration_seconds",
				Help:      "Duration of validating one parameter set in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of validation runs",
			},
			[]string{"result"}, // success or failure
		),

		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of a validation run in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
		),
	}
}

// ObserveSet records one validated set and its violations.
func (r *Recorder) ObserveSet(set *execution.SetResult) {
	if set == nil {
		return
	}
	r.setsTotal.WithLabelValues(string(set.Status)).Inc()
	r.setDuration.Observe(set.Duration.Seconds())
	for _, v := range set.Violations {
		r.violationsTotal.WithLabelValues(v.Field.String(), v.Kind.String()).Inc()
	}
}

// ObserveRun records a finished run.
func (r *Recorder) ObserveRun(result *execution.RunResult) {
	if result == nil {
		return
	}
	outcome := "success"
	if result.HasFailures() {
		outcome = "failure"
	}
	r.runsTotal.WithLabelValues(outcome).Inc()
	r.runDuration.Observe(result.Duration.Seconds())
}

// Gatherer exposes the registry, e.g. for an HTTP handler.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes every metric to path for the
// node-exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
