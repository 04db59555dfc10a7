package sale

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the sale counters exported on /metrics.
type Metrics struct {
	SalesCompleted *prometheus.CounterVec
	PointsRedeemed prometheus.Counter
}

// NewMetrics registers and returns the sale metrics.
func NewMetrics() *Metrics {
	salesCompleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tillpoint",
		Subsystem: "sale",
		Name:      "completed_total",
		Help:      "Total number of completed sales.",
	}, []string{"payment_method"})
	pointsRedeemed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tillpoint",
		Subsystem: "sale",
		Name:      "points_redeemed_total",
		Help:      "Total loyalty points redeemed across completed sales.",
	})

	prometheus.MustRegister(salesCompleted, pointsRedeemed)
	return &Metrics{SalesCompleted: salesCompleted, PointsRedeemed: pointsRedeemed}
}
