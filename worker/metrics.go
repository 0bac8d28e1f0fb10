package worker

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ticks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "ticks_total",
			Help:      "Simulation ticks run by this process.",
		},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "tick_duration_seconds",
			Help:      "Time spent inside a single simulation step.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		},
	)
	deaths = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "deaths_total",
			Help:      "Creature deaths by kind and cause.",
		},
		[]string{"kind", "cause"},
	)
	restarts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "restarts_total",
			Help:      "Rounds restarted on request or by the autopilot.",
		},
	)
	pellets = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "pellets",
			Help:      "Live food pellets per running session.",
		},
		[]string{"session"},
	)
	playerLength = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "arena",
			Subsystem: "worker",
			Name:      "player_length",
			Help:      "Desired player length per running session.",
		},
		[]string{"session"},
	)
)

func init() {
	prometheus.MustRegister(ticks, tickDuration, deaths, restarts, pellets, playerLength)
}

func forgetSession(id string) {
	pellets.DeleteLabelValues(id)
	playerLength.DeleteLabelValues(id)
}
