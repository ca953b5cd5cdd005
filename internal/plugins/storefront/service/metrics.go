package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartLinesAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_adds_total",
			Help: "Add-to-cart intents by outcome (created, incremented, invalid)",
		},
		[]string{"outcome"},
	)

	checkoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Checkout attempts by result (exported, empty, failed)",
		},
		[]string{"result"},
	)

	pointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_loyalty_points_awarded_total",
			Help: "Loyalty points awarded on checkout",
		},
	)

	advisorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_advisor_requests_total",
			Help: "Advisor requests by site and whether the reply was applied",
		},
		[]string{"site", "applied"},
	)

	persistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_persist_failures_total",
			Help: "Failed fire-and-forget preference writes",
		},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "In-memory client sessions",
		},
	)
)
