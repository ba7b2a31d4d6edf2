package order_created

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeProcessed    = "processed"
	outcomeDuplicate    = "duplicate"
	outcomeDeadLettered = "dead_lettered"
	outcomeDropped      = "dropped"
	outcomeRedelivery   = "redelivery"
)

var OrderEventsConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_events_consumed_total",
		Help: "Total number of order_created messages by processing outcome",
	},
	[]string{"outcome"},
)
