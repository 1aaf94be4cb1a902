package monitoring

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_submitted_total",
			Help: "Booking submissions by event and outcome",
		},
		[]string{"event_id", "status"},
	)

	bookingsReviewed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_reviewed_total",
			Help: "Admin booking reviews by decision",
		},
		[]string{"decision"},
	)

	bookingAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_total_amount",
			Help:    "Distribution of booking totals including platform fee",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		},
	)

	draftTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_transitions_total",
			Help: "Checkout draft step transitions",
		},
		[]string{"step", "status"},
	)
)

// TrackBookingSubmitted records one submission attempt outcome.
func TrackBookingSubmitted(eventID, status string) {
	bookingsSubmitted.WithLabelValues(eventID, status).Inc()
}

// TrackBookingReviewed records an admin confirm/decline decision.
func TrackBookingReviewed(decision string) {
	bookingsReviewed.WithLabelValues(decision).Inc()
}

// TrackBookingAmount records the final total of an accepted booking.
func TrackBookingAmount(amount float64) {
	bookingAmount.Observe(amount)
}

// TrackTransition records a checkout step transition attempt.
func TrackTransition(step, status string) {
	draftTransitions.WithLabelValues(step, status).Inc()
}

// Serve exposes the metrics endpoint on its own port.
func Serve(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("metrics server stopped: %v", err)
	}
}
