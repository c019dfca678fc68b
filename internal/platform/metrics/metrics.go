package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Phase labels for RecordsTotal.
const (
	PhaseRegistration = "registration"
	PhaseTransaction  = "transaction"
)

// Metrics holds the Prometheus metrics of one validation run. Each instance
// owns its registry so repeated runs in one process never share counters.
type Metrics struct {
	registry *prometheus.Registry

	RecordsTotal        *prometheus.CounterVec
	RejectionsTotal     *prometheus.CounterVec
	KeysRegisteredTotal *prometheus.CounterVec
	RunDuration         prometheus.Histogram
}

// New creates a Metrics instance with all metrics registered on a fresh
// registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pixcheck_records_total",
			Help: "Input lines validated, by phase",
		}, []string{"phase"}),
		RejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pixcheck_rejections_total",
			Help: "Runs rejected, by failure category",
		}, []string{"category"}),
		KeysRegisteredTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pixcheck_keys_registered_total",
			Help: "Keys admitted to the registry, by kind (identifiers included)",
		}, []string{"kind"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pixcheck_run_duration_seconds",
			Help:    "Wall time of a validation run",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

// IncrementRecord counts one validated line in the given phase.
func (m *Metrics) IncrementRecord(phase string) {
	m.RecordsTotal.WithLabelValues(phase).Inc()
}

// IncrementRejection counts a rejected run.
func (m *Metrics) IncrementRejection(category string) {
	m.RejectionsTotal.WithLabelValues(category).Inc()
}

// IncrementKeyRegistered counts one admitted key.
func (m *Metrics) IncrementKeyRegistered(kind string) {
	m.KeysRegisteredTotal.WithLabelValues(kind).Inc()
}

// ObserveRun records the duration of a run.
// Call with the time the run started.
func (m *Metrics) ObserveRun(start time.Time) {
	m.RunDuration.Observe(time.Since(start).Seconds())
}

// Gatherer exposes the run's registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes every metric in the textfile-collector format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
