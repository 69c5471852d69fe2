package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsProcessed counts pipeline results by enrichment branch:
	// "catalog" or "fallback".
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixelport_events_processed_total",
		Help: "Conversion events processed by the tracking pipeline.",
	}, []string{"result"})

	// DispatchOutcomes counts delivery-outcome verdicts by action.
	DispatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixelport_dispatch_outcomes_total",
		Help: "Delivery outcome classifications for dispatched events.",
	}, []string{"action"})
)
