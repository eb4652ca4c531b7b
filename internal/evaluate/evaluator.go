// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingcf/internal/metrics"
	"github.com/tomtom215/ratingcf/internal/predict"
	"github.com/tomtom215/ratingcf/internal/ratings"
)

// ErrEmptyEvaluation is returned when no test record names a known user.
var ErrEmptyEvaluation = errors.New("no test record matched a user in the training set")

// Source yields test records one at a time. Next returns io.EOF after the
// last record; any other error aborts the evaluation.
type Source interface {
	Next() (ratings.Rating, error)
}

// Result holds the error metrics of one evaluation run.
type Result struct {
	MAE      float64       `json:"mae"`
	RMSE     float64       `json:"rmse"`
	Matched  int           `json:"matched"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Config contains evaluator parameters.
type Config struct {
	// ProgressEvery logs a progress line after this many matched records.
	// Zero disables progress logging.
	ProgressEvery int
}

// DefaultConfig returns default evaluator configuration.
func DefaultConfig() Config {
	return Config{ProgressEvery: 10000}
}

// Evaluator streams test records through a Predictor and aggregates MAE and
// RMSE. Records are processed strictly in order: with pair-keyed weight
// caching the result depends on which record first computes each weight.
type Evaluator struct {
	predictor *predict.Predictor
	config    Config
	logger    zerolog.Logger
}

// New creates an evaluator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(p *predict.Predictor, cfg Config, logger zerolog.Logger) *Evaluator {
	if cfg.ProgressEvery < 0 {
		cfg.ProgressEvery = 0
	}
	return &Evaluator{
		predictor: p,
		config:    cfg,
		logger:    logger.With().Str("component", "evaluate").Logger(),
	}
}

// Evaluate scores an in-memory slice of test records.
func (e *Evaluator) Evaluate(ctx context.Context, records []ratings.Rating) (Result, error) {
	return e.EvaluateSource(ctx, &sliceSource{records: records})
}

// EvaluateSource scores every record produced by src.
//
// Records whose user is absent from the store are skipped and contribute
// to neither sum nor count. An unknown movie is not skipped: its prediction
// is the user's average. ErrEmptyEvaluation is returned when nothing matched.
func (e *Evaluator) EvaluateSource(ctx context.Context, src Source) (Result, error) {
	start := time.Now()
	store := e.predictor.Store()

	var (
		res     Result
		maeSum  float64
		rmseSum float64
	)

	for {
		if err := ctx.Err(); err != nil {
			metrics.RecordEvaluationError("canceled")
			return Result{}, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.RecordEvaluationError("source")
			return Result{}, fmt.Errorf("read test record: %w", err)
		}

		user, ok := store.User(rec.UserID)
		if !ok {
			res.Skipped++
			metrics.RecordEvaluationRecord(false)
			continue
		}

		predicted := e.predictor.PredictProfile(user, rec.UserID, rec.MovieID)
		metrics.RecordPrediction("evaluate")
		metrics.RecordEvaluationRecord(true)

		diff := predicted - rec.Value
		maeSum += math.Abs(diff)
		rmseSum += diff * diff
		res.Matched++

		if e.config.ProgressEvery > 0 && res.Matched%e.config.ProgressEvery == 0 {
			e.logger.Info().
				Int("matched", res.Matched).
				Int("skipped", res.Skipped).
				Float64("running_mae", maeSum/float64(res.Matched)).
				Msg("evaluation progress")
		}
	}

	res.Duration = time.Since(start)

	if res.Matched == 0 {
		metrics.RecordEvaluationError("empty")
		e.logger.Warn().Int("skipped", res.Skipped).Msg("evaluation matched no known user")
		return res, ErrEmptyEvaluation
	}

	n := float64(res.Matched)
	res.MAE = maeSum / n
	res.RMSE = math.Sqrt(rmseSum / n)

	metrics.RecordEvaluation(res.MAE, res.RMSE, res.Duration)
	e.logger.Info().
		Float64("mae", res.MAE).
		Float64("rmse", res.RMSE).
		Int("matched", res.Matched).
		Int("skipped", res.Skipped).
		Dur("duration", res.Duration).
		Msg("evaluation complete")

	return res, nil
}

// sliceSource adapts a slice to Source.
type sliceSource struct {
	records []ratings.Rating
	pos     int
}

func (s *sliceSource) Next() (ratings.Rating, error) {
	if s.pos >= len(s.records) {
		return ratings.Rating{}, io.EOF
	}
	r := s.records[s.pos]
	s.pos++
	return r, nil
}
