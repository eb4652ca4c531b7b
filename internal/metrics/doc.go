// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

/*
Package metrics provides Prometheus metrics collection and export.

Collectors are registered with the default registry through promauto at
package initialization. Components call the Record* helpers rather than
touching collectors directly.

# Metrics Endpoint

In serve mode metrics are exposed at /metrics in Prometheus text format:

	curl http://localhost:8088/metrics

# Available Metrics

Ingestion:
  - ratingcf_ingest_records_total{kind}: records read (counter)
  - ratingcf_ingest_errors_total{kind}: passes aborted by a parse error (counter)
  - ratingcf_ingest_duration_seconds{kind}: pass duration (histogram)
  - ratingcf_store_users, ratingcf_store_movies: store cardinality (gauges)

Similarity cache:
  - ratingcf_similarity_cache_hits_total, ratingcf_similarity_cache_misses_total
  - ratingcf_similarity_cache_entries (gauge)

Prediction and evaluation:
  - ratingcf_predictions_total{site}: predictions by call site
  - ratingcf_prediction_clamps_total{bound}: predictions clamped to 1 or 5
  - ratingcf_evaluation_records_total{outcome}: matched or skipped test records
  - ratingcf_evaluation_mae, ratingcf_evaluation_rmse: last run (gauges)
  - ratingcf_evaluation_duration_seconds (histogram)
  - ratingcf_evaluation_errors_total{reason}

API:
  - ratingcf_api_requests_total{method,endpoint,status_code}
  - ratingcf_api_request_duration_seconds{method,endpoint}
  - ratingcf_api_active_requests (gauge)
  - ratingcf_api_rate_limit_hits_total{endpoint}

Reports:
  - ratingcf_reports_saved_total, ratingcf_reports_pruned_total

# Testing

Use prometheus/testutil to read collector values:

	before := testutil.ToFloat64(metrics.SimilarityCacheHits)
	// ... exercise code ...
	after := testutil.ToFloat64(metrics.SimilarityCacheHits)
*/
package metrics
