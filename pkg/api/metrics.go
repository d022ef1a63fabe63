package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records query traffic for the /metrics endpoint.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration prometheus.Histogram
	results  prometheus.Histogram
	words    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anafind_queries_total",
			Help: "Queries served, by outcome",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anafind_query_duration_seconds",
			Help:    "Time spent scanning the index per query",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "anafind_query_results",
			Help:    "Words returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
		words: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "anafind_index_words",
			Help: "Words held by the loaded index",
		}),
	}
	reg.MustRegister(m.queries, m.duration, m.results, m.words)
	return m
}

func (m *Metrics) observeQuery(d time.Duration, results int) {
	m.queries.WithLabelValues("success").Inc()
	m.duration.Observe(d.Seconds())
	m.results.Observe(float64(results))
}

func (m *Metrics) observeRejected() {
	m.queries.WithLabelValues("rejected").Inc()
}
