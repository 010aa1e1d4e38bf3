package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Analytics Metrics
	MaterializationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stats_materializations_total",
			Help: "Total number of stats snapshot materializations",
		},
	)

	LeaderboardCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leaderboard_cache_lookups_total",
			Help: "Leaderboard cache lookups by outcome",
		},
		[]string{"outcome"}, // hit, miss, error
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by component and reason",
		},
		[]string{"component", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackError increments the error counter
func TrackError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}

// TrackMaterialization counts a completed snapshot materialization
func TrackMaterialization() {
	MaterializationsTotal.Inc()
}

// TrackCacheLookup records a leaderboard cache lookup outcome
func TrackCacheLookup(outcome string) {
	LeaderboardCacheLookups.WithLabelValues(outcome).Inc()
}
