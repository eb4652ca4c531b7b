// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingcf/internal/predict"
	"github.com/tomtom215/ratingcf/internal/ratings"
	"github.com/tomtom215/ratingcf/internal/report"
	"github.com/tomtom215/ratingcf/internal/similarity"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error"`
}

func newTestHandler(t *testing.T, reports ReportReader) *Handler {
	t.Helper()
	s := ratings.NewStore()
	for _, r := range []ratings.Rating{
		{MovieID: "M1", UserID: "U1", Value: 5},
		{MovieID: "M2", UserID: "U1", Value: 3},
		{MovieID: "M1", UserID: "U2", Value: 4},
		{MovieID: "M2", UserID: "U2", Value: 2},
		{MovieID: "M3", UserID: "U2", Value: 4},
		{MovieID: "M4", UserID: "U2", Value: 1},
	} {
		if err := s.RecordRating(r.MovieID, r.UserID, r.Value); err != nil {
			t.Fatalf("RecordRating() error = %v", err)
		}
	}
	for _, title := range []ratings.Title{
		{MovieID: "M1", Year: "2001", Name: "Alpha"},
		{MovieID: "M3", Year: "2003", Name: "Gamma"},
		{MovieID: "M4", Year: "2003", Name: "Delta"},
	} {
		if _, err := s.AssignTitle(title); err != nil {
			t.Fatalf("AssignTitle() error = %v", err)
		}
	}
	s.Freeze()

	cache, err := similarity.NewCache(s)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	p, err := predict.New(s, cache, zerolog.Nop())
	if err != nil {
		t.Fatalf("predict.New() error = %v", err)
	}
	return NewHandler(p, cache, reports)
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v (body %q)", target, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})

	rec, env := do(t, router, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health HealthResponse
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if health.Users != 2 || health.Movies != 4 || health.Ratings != 6 {
		t.Errorf("health = %+v, want 2 users, 4 movies, 6 ratings", health)
	}
	if health.Reports {
		t.Error("Reports = true with no report store")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestPrediction(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
		wantTitle  string
	}{
		{name: "titled movie", target: "/api/v1/users/U1/predictions/M3", wantStatus: http.StatusOK, wantTitle: "Gamma"},
		{name: "unknown movie falls back", target: "/api/v1/users/U1/predictions/M99", wantStatus: http.StatusOK},
		{name: "unknown user", target: "/api/v1/users/ghost/predictions/M1", wantStatus: http.StatusNotFound, wantCode: "UNKNOWN_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if env.Status != "error" || env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("envelope = %+v, want error %s", env, tt.wantCode)
				}
				return
			}

			var pred PredictionResponse
			if err := json.Unmarshal(env.Data, &pred); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if pred.Rating < 1 || pred.Rating > 5 || pred.Rating != float64(int(pred.Rating)) {
				t.Errorf("Rating = %v, want whole number in [1,5]", pred.Rating)
			}
			if pred.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", pred.Title, tt.wantTitle)
			}
		})
	}
}

func TestPrediction_FallbackIsUserAverage(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})

	_, env := do(t, router, "/api/v1/users/U1/predictions/M99")
	var pred PredictionResponse
	if err := json.Unmarshal(env.Data, &pred); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if pred.Rating != 4 {
		t.Errorf("Rating = %v, want U1 average 4", pred.Rating)
	}
}

func TestRankings(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
		wantTotal  int
		wantMovies int
	}{
		{name: "two movies in 2003", target: "/api/v1/users/U1/rankings?year=2003", wantStatus: http.StatusOK, wantTotal: 2, wantMovies: 2},
		{name: "limit truncates", target: "/api/v1/users/U1/rankings?year=2003&limit=1", wantStatus: http.StatusOK, wantTotal: 2, wantMovies: 1},
		{name: "rated movies excluded", target: "/api/v1/users/U1/rankings?year=2001", wantStatus: http.StatusOK},
		{name: "no movies that year", target: "/api/v1/users/U1/rankings?year=1900", wantStatus: http.StatusOK},
		{name: "missing year", target: "/api/v1/users/U1/rankings", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "bad limit", target: "/api/v1/users/U1/rankings?year=2003&limit=abc", wantStatus: http.StatusBadRequest, wantCode: "INVALID_PARAMETER"},
		{name: "negative limit", target: "/api/v1/users/U1/rankings?year=2003&limit=-1", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "unknown user", target: "/api/v1/users/ghost/rankings?year=2003", wantStatus: http.StatusNotFound, wantCode: "UNKNOWN_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
				}
				return
			}

			var resp RankingsResponse
			if err := json.Unmarshal(env.Data, &resp); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if resp.Total != tt.wantTotal || len(resp.Movies) != tt.wantMovies {
				t.Errorf("total = %d movies = %d, want %d and %d", resp.Total, len(resp.Movies), tt.wantTotal, tt.wantMovies)
			}
			if resp.Movies == nil {
				t.Error("Movies = null, want empty array")
			}
			for i := 1; i < len(resp.Movies); i++ {
				if resp.Movies[i-1].Rating < resp.Movies[i].Rating {
					t.Errorf("movies not sorted by rating: %+v", resp.Movies)
				}
			}
		})
	}
}

func TestReports_Disabled(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})

	for _, target := range []string{"/api/v1/reports", "/api/v1/reports/any"} {
		rec, env := do(t, router, target)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", target, rec.Code)
		}
		if env.Error == nil || env.Error.Code != "REPORTS_DISABLED" {
			t.Errorf("%s error = %+v, want REPORTS_DISABLED", target, env.Error)
		}
	}
}

func TestReports(t *testing.T) {
	store, err := report.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		r := &report.Report{
			RunID:      id,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
			MAE:        0.8,
			RMSE:       1.1,
			Matched:    10 + i,
		}
		if err := store.Save(r); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	router := NewRouter(newTestHandler(t, store), RouterConfig{})

	t.Run("list newest first", func(t *testing.T) {
		rec, env := do(t, router, "/api/v1/reports?limit=2")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var list []report.Report
		if err := json.Unmarshal(env.Data, &list); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if len(list) != 2 || list[0].RunID != "run-c" || list[1].RunID != "run-b" {
			t.Errorf("list = %+v, want run-c then run-b", list)
		}
	})

	t.Run("limit out of range", func(t *testing.T) {
		rec, env := do(t, router, "/api/v1/reports?limit=5000")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		rec, env := do(t, router, "/api/v1/reports/run-a")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var got report.Report
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("decode data: %v", err)
		}
		if got.RunID != "run-a" || got.Matched != 10 {
			t.Errorf("report = %+v, want run-a with 10 matched", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec, env := do(t, router, "/api/v1/reports/missing")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if env.Error == nil || env.Error.Code != "REPORT_NOT_FOUND" {
			t.Errorf("error = %+v, want REPORT_NOT_FOUND", env.Error)
		}
	})
}

func TestRouter_RateLimit(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute})

	rec, _ := do(t, router, "/api/v1/users/U1/predictions/M3")
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	rec, env := do(t, router, "/api/v1/users/U1/predictions/M3")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "RATE_LIMITED" {
		t.Errorf("error = %+v, want RATE_LIMITED", env.Error)
	}

	// /health is outside the limited group.
	if rec, _ := do(t, router, "/health"); rec.Code != http.StatusOK {
		t.Errorf("/health status = %d, want 200", rec.Code)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})

	rec, env := do(t, router, "/nope")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("GET /nope = %d %+v, want 404 NOT_FOUND", rec.Code, env.Error)
	}

	req := httptest.NewRequest(http.MethodPost, "/health", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health = %d, want 405", w.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	router := NewRouter(newTestHandler(t, nil), RouterConfig{})
	do(t, router, "/health")

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ratingcf_") {
		t.Error("/metrics output has no ratingcf_ series")
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 7},
		{query: "n=3", want: 3},
		{query: "n=-2", want: -2},
		{query: "n=x", wantErr: true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, http.NoBody)
		got, err := intParam(r, "n", 7)
		if (err != nil) != tt.wantErr {
			t.Errorf("intParam(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("intParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
