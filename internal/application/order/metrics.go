package order

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the saga's RED metrics, registered once in main and injected
// into the service. A nil *Metrics disables recording.
type Metrics struct {
	Created         *prometheus.CounterVec
	Duration        prometheus.Histogram
	Compensations   prometheus.Counter
	LoyaltyFailures prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Created: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of order creation attempts by outcome.",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_saga_duration_seconds",
				Help:    "Duration of the order fulfillment saga in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
		Compensations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "order_compensations_total",
				Help: "Count of speculative orders deleted after a refused reservation.",
			},
		),
		LoyaltyFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "loyalty_award_failures_total",
				Help: "Count of best-effort loyalty awards that failed.",
			},
		),
	}
	reg.MustRegister(m.Created, m.Duration, m.Compensations, m.LoyaltyFailures)
	return m
}

func (m *Metrics) observeOutcome(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Created.WithLabelValues(outcome).Inc()
	m.Duration.Observe(seconds)
}

func (m *Metrics) compensation() {
	if m == nil {
		return
	}
	m.Compensations.Inc()
}

func (m *Metrics) loyaltyFailure() {
	if m == nil {
		return
	}
	m.LoyaltyFailures.Inc()
}
