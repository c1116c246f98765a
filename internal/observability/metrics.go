package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Number of successful signups per activity.",
	}, []string{"activity"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "unregistrations_total",
		Help:      "Number of successful unregistrations per activity.",
	}, []string{"activity"})

	rejectionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "rejected_operations_total",
		Help:      "Number of rejected roster operations grouped by reason.",
	}, []string{"reason"})

	rosterSizeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "signup_service",
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current roster size per activity.",
	}, []string{"activity"})

	announceFailureCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "signup_service",
		Subsystem: "announce",
		Name:      "failures_total",
		Help:      "Number of roster events that could not be published.",
	})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, rejectionCounter, rosterSizeGauge, announceFailureCounter)
}

// RecordSignup updates counters and the roster gauge after a signup commits.
func RecordSignup(activity string, rosterSize int) {
	signupCounter.WithLabelValues(activity).Inc()
	rosterSizeGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordUnregister updates counters and the roster gauge after an unregister commits.
func RecordUnregister(activity string, rosterSize int) {
	unregisterCounter.WithLabelValues(activity).Inc()
	rosterSizeGauge.WithLabelValues(activity).Set(float64(rosterSize))
}

// RecordRejection counts a rejected roster operation.
func RecordRejection(reason string) {
	rejectionCounter.WithLabelValues(reason).Inc()
}

// RecordAnnounceFailure counts a roster event that failed to publish.
func RecordAnnounceFailure() {
	announceFailureCounter.Inc()
}
