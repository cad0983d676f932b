package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// refresh loop and the notification worker.
type Metrics struct {
	RefreshCycles   *prometheus.CounterVec // labels: outcome={success,error,stale}
	RefreshDuration prometheus.Histogram
	RowsFetched     prometheus.Counter
	RowsRejected    *prometheus.CounterVec // labels: reason
	EventsCurrent   prometheus.Gauge

	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carpark",
			Name:      "refresh_cycles_total",
			Help:      "Completed refresh cycles by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carpark",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-ingest-swap cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carpark",
			Name:      "rows_fetched_total",
			Help:      "Total raw rows received from the sheet export.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carpark",
			Name:      "rows_rejected_total",
			Help:      "Rows dropped during ingestion by rejection reason.",
		}, []string{"reason"}),
		EventsCurrent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carpark",
			Name:      "events_current",
			Help:      "Events in the currently served collection.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carpark",
			Name:      "notifications_sent_total",
			Help:      "Web push notifications delivered.",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carpark",
			Name:      "notifications_failed_total",
			Help:      "Web push notifications that errored.",
		}),
	}

	prometheus.MustRegister(
		m.RefreshCycles,
		m.RefreshDuration,
		m.RowsFetched,
		m.RowsRejected,
		m.EventsCurrent,
		m.NotificationsSent,
		m.NotificationsFailed,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshCycles:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carpark", Name: "refresh_cycles_total"}, []string{"outcome"}),
		RefreshDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "carpark", Name: "refresh_duration_seconds"}),
		RowsFetched:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carpark", Name: "rows_fetched_total"}),
		RowsRejected:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carpark", Name: "rows_rejected_total"}, []string{"reason"}),
		EventsCurrent:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "carpark", Name: "events_current"}),
		NotificationsSent:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carpark", Name: "notifications_sent_total"}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carpark", Name: "notifications_failed_total"}),
	}
}
