// Package observability provides Prometheus metrics and OpenTelemetry
// trace/log export wiring for the server.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesServed counts order pages assembled successfully.
	PagesServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "orderview",
		Name:      "pages_served_total",
		Help:      "Number of order pages assembled and returned.",
	})

	storeQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "orderview",
		Name:      "store_query_duration_seconds",
		Help:      "Duration of store queries by kind (count, window, related).",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
)

// ObserveStoreQuery records the duration of one store query.
func ObserveStoreQuery(kind string, d time.Duration) {
	storeQueryDuration.WithLabelValues(kind).Observe(d.Seconds())
}
