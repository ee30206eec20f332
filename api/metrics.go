/*
metrics.go - Prometheus counters for the booking API

PURPOSE:
  Operational visibility into the three events that matter for a booking
  book: bookings made, bookings rejected for conflicts, and completions
  recorded. Exposed on GET /metrics via the standard promhttp handler.
*/
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	appointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_appointments_created_total",
		Help: "Appointments successfully booked.",
	})

	conflictsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflicts_rejected_total",
		Help: "Booking attempts rejected due to a scheduling conflict.",
	})

	completionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_completions_recorded_total",
		Help: "Appointments transitioned to completed by the sweep.",
	})
)
