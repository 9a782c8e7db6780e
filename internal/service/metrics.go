package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entryTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entry_transitions_total",
			Help: "Committed entry lifecycle transitions by event",
		},
		[]string{"event"},
	)

	entryConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entry_version_conflicts_total",
			Help: "Optimistic-lock failures surfaced to callers",
		},
	)

	schedulerSweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_sweeps_total",
			Help: "Scheduler sweep runs",
		},
	)

	schedulerActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_actions_total",
			Help: "Scheduled actions executed by the sweep, by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	schedulerSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scheduler_sweep_duration_seconds",
			Help:    "Duration of a scheduler sweep",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)
