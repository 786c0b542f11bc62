package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events appended to the durable log",
		},
		[]string{"type"},
	)

	SubscribersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "event_subscribers_active",
			Help: "Number of live event subscribers",
		},
	)

	DeliveriesDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_deliveries_dropped_total",
			Help: "Total number of events dropped from slow subscriber queues",
		},
	)
)
