// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8480/metrics

# Available Metrics

Recommendation:
  - recommend_duration_seconds{strategy}
  - recommend_results{strategy}
  - recommend_errors_total{strategy}
  - recommend_cold_starts_total{strategy}

Artifact:
  - artifact_training_duration_seconds
  - artifact_training_runs_total{result}
  - artifact_items, artifact_vocabulary_terms, artifact_last_trained_timestamp_seconds

Catalog and API:
  - duckdb_query_duration_seconds{operation,table}
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}

TMDB:
  - tmdb_requests_total{endpoint,result}
  - circuit_breaker_state{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
