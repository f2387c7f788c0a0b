package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkdesk_registrations_total",
		Help: "Vehicles registered at the front desk.",
	})
	CheckinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkdesk_checkins_total",
		Help: "Recorded vehicle arrivals.",
	})
	CheckoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkdesk_checkouts_total",
		Help: "Recorded vehicle departures.",
	})
	RevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkdesk_revenue_total",
		Help: "Accumulated checkout fees in currency units.",
	})
)
