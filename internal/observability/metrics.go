package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wildfire_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Region selection lifecycle.
	SelectionsStarted    prometheus.Counter
	SelectionsCompleted  prometheus.Counter
	SelectionsSuperseded prometheus.Counter
	SelectionErrors      prometheus.Counter
	SelectionDuration    prometheus.Histogram
	Processing           prometheus.Gauge

	StepDuration *prometheus.HistogramVec // labels: step

	// Risk chart binding.
	ChartRenders prometheus.Counter
	LiveCharts   prometheus.Gauge

	// Outbound results and live clients.
	ResultsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	ActiveStreams    prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SelectionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_started_total",
			Help:      "Region selections that started a processing run.",
		}),
		SelectionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_completed_total",
			Help:      "Region selections that produced prediction and simulation data.",
		}),
		SelectionsSuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_superseded_total",
			Help:      "Runs discarded because a newer selection started.",
		}),
		SelectionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_errors_total",
			Help:      "Runs that ended with a processing failure.",
		}),
		SelectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selection_duration_seconds",
			Help:      "Wall time from selection to published datasets.",
			Buckets:   []float64{1, 2.5, 5, 7.5, 10, 12.5, 15, 20, 30},
		}),
		Processing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "processing",
			Help:      "1 while a selection run is in flight, 0 otherwise.",
		}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processing_step_duration_seconds",
			Help:      "Duration of each simulated processing step, excluding the start delay.",
			Buckets:   []float64{0.1, 0.25, 0.4, 0.5, 1, 2},
		}, []string{"step"}),
		ChartRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_renders_total",
			Help:      "Risk charts constructed.",
		}),
		LiveCharts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_charts",
			Help:      "Chart instances currently bound to a surface.",
		}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_published_total",
			Help:      "Analysis results written to the results topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Analysis results that failed to publish.",
		}),
		ActiveStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_streams",
			Help:      "Connected websocket state streams.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SelectionsStarted,
		m.SelectionsCompleted,
		m.SelectionsSuperseded,
		m.SelectionErrors,
		m.SelectionDuration,
		m.Processing,
		m.StepDuration,
		m.ChartRenders,
		m.LiveCharts,
		m.ResultsPublished,
		m.PublishErrors,
		m.ActiveStreams,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
	}
}
