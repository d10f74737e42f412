// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - Recommendation latency and result sizes per strategy
// - Artifact training runs
// - Catalog queries (DuckDB)
// - API endpoint latency and throughput
// - TMDB client calls and circuit breaker state

var (
	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation calls in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"strategy"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_results",
			Help:    "Number of items returned per recommendation call",
			Buckets: []float64{0, 1, 5, 10, 15, 25, 50},
		},
		[]string{"strategy"},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_errors_total",
			Help: "Total number of recommendation calls that failed upstream",
		},
		[]string{"strategy"},
	)

	RecommendColdStarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cold_starts_total",
			Help: "Total number of recommendation calls resolved to an empty result",
		},
		[]string{"strategy"},
	)

	// Artifact Metrics
	ArtifactTrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "artifact_training_duration_seconds",
			Help:    "Duration of content artifact builds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
	)

	ArtifactTrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_training_runs_total",
			Help: "Total number of artifact training runs",
		},
		[]string{"result"}, // "success", "failure", "skipped"
	)

	ArtifactItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_items",
			Help: "Number of items in the published content artifact",
		},
	)

	ArtifactVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_vocabulary_terms",
			Help: "Number of vocabulary terms in the published content artifact",
		},
	)

	ArtifactLastTrained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_last_trained_timestamp_seconds",
			Help: "Unix timestamp of the published content artifact",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently in flight",
		},
	)

	// TMDB Client Metrics
	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"endpoint", "result"}, // result: "success", "failure", "rejected"
	)

	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SeededMovies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_seeded_movies_total",
			Help: "Total number of movies processed by the TMDB seeder",
		},
		[]string{"result"}, // "inserted", "skipped", "failed"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordRecommendation records the outcome of one recommendation call.
func RecordRecommendation(strategy string, duration time.Duration, results int, err error) {
	RecommendDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if err != nil {
		RecommendErrors.WithLabelValues(strategy).Inc()
		return
	}
	RecommendResults.WithLabelValues(strategy).Observe(float64(results))
	if results == 0 {
		RecommendColdStarts.WithLabelValues(strategy).Inc()
	}
}

// RecordTraining records an artifact build.
func RecordTraining(duration time.Duration, result string) {
	ArtifactTrainingRuns.WithLabelValues(result).Inc()
	if result == "success" {
		ArtifactTrainingDuration.Observe(duration.Seconds())
	}
}

// SetArtifact updates gauges describing the published artifact.
func SetArtifact(items, vocabulary int, trainedAt time.Time) {
	ArtifactItems.Set(float64(items))
	ArtifactVocabulary.Set(float64(vocabulary))
	ArtifactLastTrained.Set(float64(trainedAt.Unix()))
}

// RecordDBQuery records a catalog query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTMDBRequest records a TMDB API call.
func RecordTMDBRequest(endpoint, result string, duration time.Duration) {
	TMDBRequestsTotal.WithLabelValues(endpoint, result).Inc()
	TMDBRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
