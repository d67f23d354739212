package compare

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments catalog lookups. Pass nil to NewEngine to run without
// instrumentation (tests, one-shot CLI runs).
type Metrics struct {
	Lookups        prometheus.Counter
	LookupErrors   prometheus.Counter
	LookupDuration prometheus.Histogram
}

// NewMetrics creates the lookup metric set.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ec2_price",
			Name:      "catalog_lookups_total",
			Help:      "Total pricing catalog queries issued.",
		}),
		LookupErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ec2_price",
			Name:      "catalog_lookup_errors_total",
			Help:      "Catalog queries that failed with a transport or decode error.",
		}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ec2_price",
			Name:      "catalog_lookup_duration_seconds",
			Help:      "Duration of individual catalog queries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// MustRegister registers all lookup metrics with reg.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.Lookups, m.LookupErrors, m.LookupDuration)
}
