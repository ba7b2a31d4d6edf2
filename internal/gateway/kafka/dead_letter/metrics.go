package dead_letter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DeadLetterTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_dead_letter_total",
		Help: "Total number of rejected messages copied to the dead letter topic",
	},
	[]string{"source_topic", "result"},
)
