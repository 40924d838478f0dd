package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketd_orders_placed_total",
			Help: "Orders placed, by outcome",
		},
		[]string{"status"},
	)

	ticketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticketd_tickets_issued_total",
			Help: "Attendee records issued",
		},
	)

	checkins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketd_checkins_total",
			Help: "Check-in scans, by result",
		},
		[]string{"result"},
	)

	orderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticketd_order_place_duration_seconds",
			Help:    "Duration of order placement",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

func TrackOrderPlaced(status string, quantity int, took time.Duration) {
	ordersPlaced.WithLabelValues(status).Inc()
	if status == "ok" {
		ticketsIssued.Add(float64(quantity))
	}
	orderDuration.Observe(took.Seconds())
}

func TrackCheckin(result string) {
	checkins.WithLabelValues(result).Inc()
}
