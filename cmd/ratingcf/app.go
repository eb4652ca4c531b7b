// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingcf/internal/config"
	"github.com/tomtom215/ratingcf/internal/evaluate"
	"github.com/tomtom215/ratingcf/internal/ingest"
	"github.com/tomtom215/ratingcf/internal/logging"
	"github.com/tomtom215/ratingcf/internal/predict"
	"github.com/tomtom215/ratingcf/internal/ratings"
	"github.com/tomtom215/ratingcf/internal/report"
	"github.com/tomtom215/ratingcf/internal/similarity"
)

var errUsage = errors.New("usage error")

// app holds one loaded model and the streams commands talk to.
type app struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	json   bool
	logger zerolog.Logger

	store   *ratings.Store
	simOpts []similarity.Option
	ingest  ingest.Stats

	trainingPath string
	titlesPath   string
}

func newApp(cfg *config.Config, stdin io.Reader, stdout io.Writer, jsonOut bool) *app {
	return &app{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		json:   jsonOut,
		logger: logging.WithComponent("cli"),
	}
}

// loadModel ingests the training and catalog files into a frozen store.
// Predictors are built over it per run with newPredictor.
func (a *app) loadModel(ctx context.Context, trainingPath, titlesPath string) error {
	store := ratings.NewStore()
	stats, err := ingest.LoadFiles(ctx, store, trainingPath, titlesPath)
	if err != nil {
		return fmt.Errorf("load training data: %w", err)
	}

	var opts []similarity.Option
	if a.cfg.Similarity.KeyByExcludedMovie {
		opts = append(opts, similarity.WithExcludedMovieKey())
	}

	a.store = store
	a.simOpts = opts
	a.ingest = stats
	a.trainingPath = trainingPath
	a.titlesPath = titlesPath
	return nil
}

// newPredictor builds a predictor over the loaded store with an empty
// similarity cache. Weights cached under the pair-only key depend on the
// movie excluded when they were first computed, so every evaluation run
// and every ranking query gets its own cache.
func (a *app) newPredictor() (*predict.Predictor, *similarity.Cache, error) {
	cache, err := similarity.NewCache(a.store, a.simOpts...)
	if err != nil {
		return nil, nil, err
	}
	p, err := predict.New(a.store, cache, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return p, cache, nil
}

// rank answers one ranking query on a fresh cache.
func (a *app) rank(userID, year string) ([]predict.RankedMovie, error) {
	p, _, err := a.newPredictor()
	if err != nil {
		return nil, err
	}
	return p.RankMoviesForYear(userID, year)
}

// evaluation is the outcome of scoring one test file.
type evaluation struct {
	Result evaluate.Result `json:"result"`
	RunID  string          `json:"run_id,omitempty"`
}

// evaluateFile scores testPath against the loaded model and, when report
// history is enabled, saves a report of the run.
func (a *app) evaluateFile(ctx context.Context, testPath string) (*evaluation, error) {
	started := time.Now()

	p, cache, err := a.newPredictor()
	if err != nil {
		return nil, err
	}

	reader, closer, err := ingest.OpenRatings(testPath)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	ev := evaluate.New(p, evaluate.Config{ProgressEvery: a.cfg.Evaluate.ProgressEvery}, a.logger)
	res, err := ev.EvaluateSource(ctx, reader)
	if err != nil {
		return nil, err
	}

	out := &evaluation{Result: res}
	if !a.cfg.Reports.Enabled() {
		return out, nil
	}

	rep := report.New(&report.Run{
		StartedAt:    started,
		TrainingPath: a.trainingPath,
		TitlesPath:   a.titlesPath,
		TestPath:     testPath,
		Ingest:       a.ingest,
		Ratings:      a.store.RatingCount(),
		Result:       res,
		Cache:        cache.Stats(),
		ExactKeys:    cache.KeyByExcludedMovie(),
	})
	if err := a.saveReport(rep); err != nil {
		// Report history is best effort.
		a.logger.Error().Err(err).Str("run_id", rep.RunID).Msg("failed to save evaluation report")
		return out, nil
	}
	out.RunID = rep.RunID
	return out, nil
}

func (a *app) saveReport(rep *report.Report) error {
	store, err := report.Open(a.cfg.Reports.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(rep); err != nil {
		return err
	}
	if a.cfg.Reports.Retain > 0 {
		if _, err := store.Prune(a.cfg.Reports.Retain); err != nil {
			return err
		}
	}
	a.logger.Info().Str("run_id", rep.RunID).Str("path", a.cfg.Reports.Path).Msg("evaluation report saved")
	return nil
}
