// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/ratingcf/internal/predict"
	"github.com/tomtom215/ratingcf/internal/ratings"
	"github.com/tomtom215/ratingcf/internal/report"
	"github.com/tomtom215/ratingcf/internal/similarity"
	"github.com/tomtom215/ratingcf/internal/validation"
)

// ReportReader is the read side of report.Store.
type ReportReader interface {
	List(limit int) ([]report.Report, error)
	Get(runID string) (*report.Report, error)
}

// Handler serves predictions, rankings and report history from a frozen
// store.
type Handler struct {
	predictor *predict.Predictor
	cache     *similarity.Cache
	reports   ReportReader
	started   time.Time
}

// NewHandler creates a handler. reports may be nil when report history is
// disabled; the report endpoints then answer 503.
func NewHandler(p *predict.Predictor, cache *similarity.Cache, reports ReportReader) *Handler {
	return &Handler{
		predictor: p,
		cache:     cache,
		reports:   reports,
		started:   time.Now(),
	}
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string           `json:"status"`
	Users         int              `json:"users"`
	Movies        int              `json:"movies"`
	Ratings       int              `json:"ratings"`
	Cache         similarity.Stats `json:"cache"`
	ExactKeys     bool             `json:"key_by_excluded_movie"`
	Reports       bool             `json:"reports_enabled"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()
	store := h.predictor.Store()
	respondOK(w, start, HealthResponse{
		Status:        "ok",
		Users:         store.UserCount(),
		Movies:        store.MovieCount(),
		Ratings:       store.RatingCount(),
		Cache:         h.cache.Stats(),
		ExactKeys:     h.cache.KeyByExcludedMovie(),
		Reports:       h.reports != nil,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	})
}

// PredictionResponse is returned by the prediction endpoint.
type PredictionResponse struct {
	UserID  string  `json:"user_id"`
	MovieID string  `json:"movie_id"`
	Rating  float64 `json:"rating"`
	Title   string  `json:"title,omitempty"`
	Year    string  `json:"year,omitempty"`
}

// Prediction handles GET /api/v1/users/{userID}/predictions/{movieID}.
// Unknown movies are not an error: the prediction is the user's average.
func (h *Handler) Prediction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")
	movieID := chi.URLParam(r, "movieID")

	rating, err := h.predictor.PredictRating(userID, movieID)
	if err != nil {
		h.respondPredictError(w, r, userID, err)
		return
	}

	resp := PredictionResponse{UserID: userID, MovieID: movieID, Rating: rating}
	if m, ok := h.predictor.Store().Movie(movieID); ok && m.HasTitle() {
		resp.Title = m.Name
		resp.Year = m.Year
	}
	respondOK(w, start, resp)
}

type rankingsQuery struct {
	Year  string `json:"year" validate:"required"`
	Limit int    `json:"limit" validate:"gte=0"`
}

// RankingsResponse is returned by the rankings endpoint.
type RankingsResponse struct {
	UserID string                `json:"user_id"`
	Year   string                `json:"year"`
	Total  int                   `json:"total"`
	Movies []predict.RankedMovie `json:"movies"`
}

// Rankings handles GET /api/v1/users/{userID}/rankings?year=YYYY[&limit=N].
// Movies are ordered by predicted rating, best first. Total counts every
// qualifying movie; limit only truncates Movies.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")

	limit, err := intParam(r, "limit", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, &APIError{Code: "INVALID_PARAMETER", Message: err.Error()}, nil)
		return
	}
	q := rankingsQuery{Year: r.URL.Query().Get("year"), Limit: limit}
	if !validateQuery(w, r, &q) {
		return
	}

	ranked, err := h.predictor.RankMoviesForYear(userID, q.Year)
	if err != nil {
		h.respondPredictError(w, r, userID, err)
		return
	}

	resp := RankingsResponse{UserID: userID, Year: q.Year, Total: len(ranked), Movies: ranked}
	if q.Limit > 0 && len(ranked) > q.Limit {
		resp.Movies = ranked[:q.Limit]
	}
	respondOK(w, start, resp)
}

func (h *Handler) respondPredictError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	if errors.Is(err, ratings.ErrUnknownUser) {
		respondError(w, r, http.StatusNotFound, &APIError{
			Code:    "UNKNOWN_USER",
			Message: "User is not in the training data",
			Details: map[string]interface{}{"user_id": userID},
		}, err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, &APIError{Code: "PREDICTION_ERROR", Message: "Prediction failed"}, err)
}

type reportsQuery struct {
	Limit int `json:"limit" validate:"gte=0,lte=1000"`
}

// Reports handles GET /api/v1/reports?limit=N, newest first.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.reportsEnabled(w, r) {
		return
	}

	limit, err := intParam(r, "limit", 20)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, &APIError{Code: "INVALID_PARAMETER", Message: err.Error()}, nil)
		return
	}
	q := reportsQuery{Limit: limit}
	if !validateQuery(w, r, &q) {
		return
	}

	list, err := h.reports.List(q.Limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &APIError{Code: "REPORT_STORE_ERROR", Message: "Failed to list reports"}, err)
		return
	}
	respondOK(w, start, list)
}

// Report handles GET /api/v1/reports/{runID}.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.reportsEnabled(w, r) {
		return
	}

	runID := chi.URLParam(r, "runID")
	rep, err := h.reports.Get(runID)
	if errors.Is(err, report.ErrReportNotFound) {
		respondError(w, r, http.StatusNotFound, &APIError{
			Code:    "REPORT_NOT_FOUND",
			Message: "No report with this run id",
			Details: map[string]interface{}{"run_id": runID},
		}, nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &APIError{Code: "REPORT_STORE_ERROR", Message: "Failed to load report"}, err)
		return
	}
	respondOK(w, start, rep)
}

func (h *Handler) reportsEnabled(w http.ResponseWriter, r *http.Request) bool {
	if h.reports != nil {
		return true
	}
	respondError(w, r, http.StatusServiceUnavailable, &APIError{
		Code:    "REPORTS_DISABLED",
		Message: "Report history is not configured (reports.path)",
	}, nil)
	return false
}

// validateQuery runs struct validation and writes a 400 on failure.
func validateQuery(w http.ResponseWriter, r *http.Request, q interface{}) bool {
	err := validation.ValidateStruct(q)
	if err == nil {
		return true
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, &APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}, nil)
		return false
	}
	respondError(w, r, http.StatusBadRequest, &APIError{Code: "VALIDATION_ERROR", Message: err.Error()}, nil)
	return false
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, &APIError{Code: "NOT_FOUND", Message: "No such endpoint"}, nil)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, &APIError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"}, nil)
}
