// Package services – Prometheus collectors for domain events.
//
// HTTP-level metrics live in the middleware package; the counters here track
// business outcomes regardless of transport.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// pointsAwarded accumulates ledger points granted through reward claims.
	pointsAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "points_awarded_total",
		Help: "Total points credited to ledgers via mission reward claims.",
	})

	// disputesOpened counts non-delivery disputes accepted by the service.
	disputesOpened = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "disputes_opened_total",
		Help: "Total letter non-delivery disputes opened.",
	})

	// cancelRequests counts cancellation requests accepted by the service.
	cancelRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cancel_requests_total",
		Help: "Total mission cancellation requests filed.",
	})
)

func init() {
	prometheus.MustRegister(pointsAwarded, disputesOpened, cancelRequests)
}
