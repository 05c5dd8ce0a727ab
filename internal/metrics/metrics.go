package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring the order and cart core
var (
	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Total number of committed order status transitions",
		},
		[]string{"from", "to"},
	)

	OrderTransitionsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_transitions_rejected_total",
			Help: "Total number of transitions rejected by the policy",
		},
	)

	OrderTransitionConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_transition_conflicts_total",
			Help: "Total number of transitions lost to a concurrent writer",
		},
	)

	CartMergesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_item_merges_total",
			Help: "Total number of add-or-merge cart operations",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(OrderTransitionsTotal)
	prometheus.MustRegister(OrderTransitionsRejectedTotal)
	prometheus.MustRegister(OrderTransitionConflictsTotal)
	prometheus.MustRegister(CartMergesTotal)
}
