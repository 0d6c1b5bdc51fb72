package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "market_prices"

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	// Dataset loading.
	DatasetLoadDuration prometheus.Histogram
	DatasetRows         prometheus.Gauge
	DatasetLoadErrors   *prometheus.CounterVec // labels: kind={connection,schema,other}

	// Query path.
	Queries    *prometheus.CounterVec // labels: outcome={ok,empty,invalid,error}
	ResultRows prometheus.Histogram
	GeoLookups *prometheus.CounterVec // labels: result={hit,miss}
	MapRenders *prometheus.CounterVec // labels: state={shown,suppressed}

	// Query-event publishing.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the one-time price table fetch.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Number of price records held in memory.",
		}),
		DatasetLoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_load_errors_total",
			Help:      "Failed dataset loads by error kind.",
		}, []string{"kind"}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Dashboard and API queries by outcome.",
		}, []string{"outcome"}),
		ResultRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_result_rows",
			Help:      "Rows returned per query after filtering.",
			Buckets:   []float64{0, 1, 10, 50, 100, 500, 1000, 5000, 20000},
		}),
		GeoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geo_lookups_total",
			Help:      "County centroid lookups by result.",
		}, []string{"result"}),
		MapRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_renders_total",
			Help:      "Map views by whether the map was shown or suppressed.",
		}, []string{"state"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_events_published_total",
			Help:      "Query events written to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DatasetLoadDuration,
		m.DatasetRows,
		m.DatasetLoadErrors,
		m.Queries,
		m.ResultRows,
		m.GeoLookups,
		m.MapRenders,
		m.EventsPublished,
	}
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
