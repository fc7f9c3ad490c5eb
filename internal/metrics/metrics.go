// Package metrics holds the Prometheus collectors of the toolbox API
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_toolbox"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// GenerationsTotal counts tool generations by outcome ("success" or "error")
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of generations per tool",
		},
		[]string{"tool", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Generation duration in seconds",
			Buckets:   []float64{.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"tool"},
	)

	JiraIssuesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jira",
			Name:      "issues_created_total",
			Help:      "Jira issue creation attempts by outcome",
		},
		[]string{"status"},
	)

	TranscriptFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transcript",
			Name:      "fetches_total",
			Help:      "Transcript fetches by outcome",
		},
		[]string{"status"},
	)
)

// Status maps an error to the outcome label
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
