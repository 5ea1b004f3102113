package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	HealthComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "health_compute_duration_seconds",
			Help:    "Project health score computation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"mode"}, // mode: single, batch
	)

	HealthScoreUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_score_updates_total",
			Help: "Total number of persisted health score updates",
		},
		[]string{"status"}, // status: on_track, at_risk, critical
	)

	ActivityFeedDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "activity_feed_build_duration_seconds",
			Help:    "Activity feed build duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"scoped"}, // scoped: project, all
	)

	SubmissionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_count",
			Help: "Total number of accepted submissions",
		},
		[]string{"kind"}, // kind: checkin, feedback, risk
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordHealthCompute(mode string, duration time.Duration) {
	HealthComputeDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func IncrementHealthScoreUpdate(status string) {
	HealthScoreUpdates.WithLabelValues(status).Inc()
}

func RecordActivityFeedDuration(scoped string, duration time.Duration) {
	ActivityFeedDuration.WithLabelValues(scoped).Observe(duration.Seconds())
}

func IncrementSubmission(kind string) {
	SubmissionCount.WithLabelValues(kind).Inc()
}
