// Package metrics exposes Prometheus counters for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localpulse_events_extracted_total",
		Help: "Total number of event drafts produced by the extractor, labelled by strategy.",
	}, []string{"strategy"})

	ExtractionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localpulse_extraction_failures_total",
		Help: "Total number of structured-data blocks skipped as malformed.",
	})

	ModerationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "localpulse_moderation_transitions_total",
		Help: "Total number of moderation transitions, labelled by target status.",
	}, []string{"status"})

	RecommendationsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localpulse_recommendations_served_total",
		Help: "Total number of recommendation lists generated.",
	})

	ReviewsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localpulse_reviews_submitted_total",
		Help: "Total number of reviews accepted.",
	})
)
