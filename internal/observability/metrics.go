package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// incident sync engine.
type Metrics struct {
	RunsTotal      *prometheus.CounterVec // label: status={success,failure}
	RecordsSeen    prometheus.Counter
	RecordsCreated prometheus.Counter
	RecordsUpdated prometheus.Counter
	RecordsSkipped prometheus.Counter

	SnapshotSize prometheus.Histogram
	RunDuration  prometheus.Histogram
	RunActive    prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RecordsSeen,
		m.RecordsCreated,
		m.RecordsUpdated,
		m.RecordsSkipped,
		m.SnapshotSize,
		m.RunDuration,
		m.RunActive,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calfire_etl",
			Name:      "runs_total",
			Help:      "Sync runs by terminal status.",
		}, []string{"status"}),
		RecordsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calfire_etl",
			Name:      "records_seen_total",
			Help:      "Raw incident records received from the feed.",
		}),
		RecordsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calfire_etl",
			Name:      "records_created_total",
			Help:      "New incident rows appended to the store.",
		}),
		RecordsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calfire_etl",
			Name:      "records_updated_total",
			Help:      "Existing incident rows updated in place.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calfire_etl",
			Name:      "records_skipped_total",
			Help:      "Feed records dropped for missing required fields.",
		}),
		SnapshotSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "calfire_etl",
			Name:      "snapshot_size",
			Help:      "Incident records per feed snapshot.",
			Buckets:   []float64{1, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "calfire_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-reconcile-write run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RunActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calfire_etl",
			Name:      "run_active",
			Help:      "1 while a sync run is executing, 0 otherwise.",
		}),
	}
}
