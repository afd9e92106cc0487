package controller

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	chartProportion  = "proportion"
	chartCorrelation = "correlation"
)

type metrics struct {
	events   *prometheus.CounterVec
	renders  *prometheus.CounterVec
	rows     *prometheus.GaugeVec
	duration *prometheus.HistogramVec
}

// newMetrics builds the controller collectors. A nil reg leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "selection_events_total",
			Help:      "Selection events applied, by kind.",
		}, []string{"kind"}),
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "launchdash",
			Name:      "chart_renders_total",
			Help:      "Chart recomputations, by chart.",
		}, []string{"chart"}),
		rows: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "launchdash",
			Name:      "chart_rows",
			Help:      "Rows behind the most recent render, by chart.",
		}, []string{"chart"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "launchdash",
			Name:      "render_duration_seconds",
			Help:      "Time to filter and render a chart.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"chart"}),
	}
}

func (m *metrics) observe(chart string, rows int, d time.Duration) {
	m.renders.WithLabelValues(chart).Inc()
	m.rows.WithLabelValues(chart).Set(float64(rows))
	m.duration.WithLabelValues(chart).Observe(d.Seconds())
}
