package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricGamesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tgsr",
		Name:      "games_created_total",
		Help:      "Games created, by variant.",
	}, []string{"variant"})

	metricGamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tgsr",
		Name:      "games_started_total",
		Help:      "Games started by their host.",
	})

	metricGamesFinished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tgsr",
		Name:      "games_finished_total",
		Help:      "Games scored and finished.",
	})

	metricTagsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tgsr",
		Name:      "tags_submitted_total",
		Help:      "Tags accepted into a player's submissions.",
	})

	metricTagsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tgsr",
		Name:      "tags_rejected_total",
		Help:      "Tags rejected, by reason (invalid or duplicate).",
	}, []string{"reason"})

	metricRoomsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tgsr",
		Name:      "rooms_live",
		Help:      "Rooms currently held in memory.",
	})
)
