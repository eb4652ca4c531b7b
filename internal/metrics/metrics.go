// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Ingestion of training, title and test files
// - Similarity cache efficiency
// - Predictions per call site
// - Evaluation error and throughput
// - HTTP API latency and throughput

var (
	// Ingestion Metrics
	IngestRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_ingest_records_total",
			Help: "Total number of records read during ingestion",
		},
		[]string{"kind"}, // "rating", "title"
	)

	IngestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_ingest_errors_total",
			Help: "Total number of ingestion passes aborted by a parse error",
		},
		[]string{"kind"},
	)

	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratingcf_ingest_duration_seconds",
			Help:    "Duration of an ingestion pass in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"kind"},
	)

	StoreUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingcf_store_users",
			Help: "Number of distinct users in the rating store",
		},
	)

	StoreMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingcf_store_movies",
			Help: "Number of distinct movies in the rating store",
		},
	)

	// Similarity Cache Metrics
	SimilarityCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingcf_similarity_cache_hits_total",
			Help: "Total number of similarity cache hits",
		},
	)

	SimilarityCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingcf_similarity_cache_misses_total",
			Help: "Total number of similarity cache misses (weights computed)",
		},
	)

	SimilarityCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingcf_similarity_cache_entries",
			Help: "Current number of memoized user pair weights",
		},
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_predictions_total",
			Help: "Total number of rating predictions",
		},
		[]string{"site"}, // "evaluate", "rank", "api", "cli"
	)

	PredictionClampsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_prediction_clamps_total",
			Help: "Total number of predictions clamped to the rating scale bounds",
		},
		[]string{"bound"}, // "low", "high"
	)

	// Evaluation Metrics
	EvaluationRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_evaluation_records_total",
			Help: "Total number of test records processed by the evaluator",
		},
		[]string{"outcome"}, // "matched", "skipped"
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ratingcf_evaluation_duration_seconds",
			Help:    "Duration of an evaluation run in seconds",
			Buckets: []float64{0.1, 1, 10, 60, 300, 900, 3600},
		},
	)

	EvaluationMAE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingcf_evaluation_mae",
			Help: "Mean absolute error of the last evaluation run",
		},
	)

	EvaluationRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingcf_evaluation_rmse",
			Help: "Root mean squared error of the last evaluation run",
		},
	)

	EvaluationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_evaluation_errors_total",
			Help: "Total number of failed evaluation runs",
		},
		[]string{"reason"}, // "empty", "source", "canceled"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratingcf_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratingcf_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratingcf_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Report Store Metrics
	ReportsSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingcf_reports_saved_total",
			Help: "Total number of evaluation reports persisted",
		},
	)

	ReportsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratingcf_reports_pruned_total",
			Help: "Total number of evaluation reports removed by retention",
		},
	)
)

// RecordIngest records a completed or aborted ingestion pass.
func RecordIngest(kind string, records int, duration time.Duration, err error) {
	IngestRecordsTotal.WithLabelValues(kind).Add(float64(records))
	IngestDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err != nil {
		IngestErrorsTotal.WithLabelValues(kind).Inc()
	}
}

// UpdateStoreGauges publishes rating store cardinalities.
func UpdateStoreGauges(users, movies int) {
	StoreUsers.Set(float64(users))
	StoreMovies.Set(float64(movies))
}

// RecordSimilarityLookup records a similarity cache lookup.
func RecordSimilarityLookup(hit bool) {
	if hit {
		SimilarityCacheHits.Inc()
		return
	}
	SimilarityCacheMisses.Inc()
}

// RecordPrediction records one prediction made at the given call site.
func RecordPrediction(site string) {
	PredictionsTotal.WithLabelValues(site).Inc()
}

// RecordClamp records a prediction that fell outside the rating scale.
func RecordClamp(bound string) {
	PredictionClampsTotal.WithLabelValues(bound).Inc()
}

// RecordEvaluationRecord records one evaluator input record.
func RecordEvaluationRecord(matched bool) {
	if matched {
		EvaluationRecordsTotal.WithLabelValues("matched").Inc()
		return
	}
	EvaluationRecordsTotal.WithLabelValues("skipped").Inc()
}

// RecordEvaluation records a successful evaluation run.
func RecordEvaluation(mae, rmse float64, duration time.Duration) {
	EvaluationMAE.Set(mae)
	EvaluationRMSE.Set(rmse)
	EvaluationDuration.Observe(duration.Seconds())
}

// RecordEvaluationError records a failed evaluation run.
func RecordEvaluationError(reason string) {
	EvaluationErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordAPIRequest records API request metrics.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordReportSaved records a persisted evaluation report.
func RecordReportSaved() {
	ReportsSavedTotal.Inc()
}

// RecordReportsPruned records reports removed by retention.
func RecordReportsPruned(n int) {
	ReportsPrunedTotal.Add(float64(n))
}
