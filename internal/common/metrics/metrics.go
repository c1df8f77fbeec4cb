// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internmatch_api_requests_total",
			Help: "Total number of requests sent to the matching service",
		},
		[]string{"endpoint", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "internmatch_api_request_duration_seconds",
			Help:    "Duration of requests to the matching service in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internmatch_session_transitions_total",
			Help: "Session status transitions by target status",
		},
		[]string{"status"},
	)

	PageResponsesDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internmatch_page_responses_discarded_total",
			Help: "Page responses dropped because a newer request superseded them or the view closed",
		},
		[]string{"collection", "reason"},
	)

	ApplicationMarks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internmatch_application_marks_total",
			Help: "Local application overlay updates by status",
		},
		[]string{"status"},
	)

	GuardDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "internmatch_guard_decisions_total",
			Help: "Route guard decisions by role and decision",
		},
		[]string{"role", "decision"},
	)
)
