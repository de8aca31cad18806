package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EnrollmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nursery_enrollments_created_total",
		Help: "Enrollment requests created.",
	})

	EnrollmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nursery_enrollment_transitions_total",
		Help: "Enrollment status transitions by kind.",
	}, []string{"transition"})

	PaymentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nursery_payments_processed_total",
		Help: "Payments successfully marked as paid.",
	})

	PaymentsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nursery_payments_synced_total",
		Help: "Payment rows backfilled by the sync operation.",
	})
)
