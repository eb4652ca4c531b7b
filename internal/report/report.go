// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/ratingcf/internal/evaluate"
	"github.com/tomtom215/ratingcf/internal/ingest"
	"github.com/tomtom215/ratingcf/internal/similarity"
)

// Report records one evaluation run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	TrainingPath string `json:"training_path"`
	TitlesPath   string `json:"titles_path"`
	TestPath     string `json:"test_path"`

	Users   int `json:"users"`
	Movies  int `json:"movies"`
	Ratings int `json:"ratings"`

	MAE     float64 `json:"mae"`
	RMSE    float64 `json:"rmse"`
	Matched int     `json:"matched"`
	Skipped int     `json:"skipped"`

	CacheHits          int64 `json:"cache_hits"`
	CacheMisses        int64 `json:"cache_misses"`
	CacheSize          int   `json:"cache_size"`
	KeyByExcludedMovie bool  `json:"key_by_excluded_movie"`
}

// Run carries what a finished evaluation knows about itself.
type Run struct {
	StartedAt    time.Time
	TrainingPath string
	TitlesPath   string
	TestPath     string
	Ingest       ingest.Stats
	Ratings      int
	Result       evaluate.Result
	Cache        similarity.Stats
	ExactKeys    bool
}

// New builds a report for run with a fresh run id, finished now.
func New(run *Run) *Report {
	return &Report{
		RunID:              uuid.New().String(),
		StartedAt:          run.StartedAt.UTC(),
		FinishedAt:         time.Now().UTC(),
		TrainingPath:       run.TrainingPath,
		TitlesPath:         run.TitlesPath,
		TestPath:           run.TestPath,
		Users:              run.Ingest.Users,
		Movies:             run.Ingest.Movies,
		Ratings:            run.Ratings,
		MAE:                run.Result.MAE,
		RMSE:               run.Result.RMSE,
		Matched:            run.Result.Matched,
		Skipped:            run.Result.Skipped,
		CacheHits:          run.Cache.Hits,
		CacheMisses:        run.Cache.Misses,
		CacheSize:          run.Cache.Size,
		KeyByExcludedMovie: run.ExactKeys,
	}
}
