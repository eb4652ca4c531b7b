// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package predict

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ratingcf/internal/metrics"
	"github.com/tomtom215/ratingcf/internal/ratings"
	"github.com/tomtom215/ratingcf/internal/similarity"
)

// WeightSource returns the weight neighbor userB contributes when predicting
// excludeMovie for userA. *similarity.Cache implements it.
type WeightSource interface {
	Weight(userA, userB, excludeMovie string) float64
}

// Predictor estimates ratings from the frozen store and a weight source.
// It holds no mutable state of its own and is safe for concurrent use when
// the weight source is.
type Predictor struct {
	store   *ratings.Store
	weights WeightSource
	logger  zerolog.Logger
}

// New creates a predictor. The store must be frozen.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store *ratings.Store, weights WeightSource, logger zerolog.Logger) (*Predictor, error) {
	if store == nil || !store.Frozen() {
		return nil, similarity.ErrStoreNotFrozen
	}
	if weights == nil {
		return nil, fmt.Errorf("predictor requires a weight source")
	}
	return &Predictor{
		store:   store,
		weights: weights,
		logger:  logger.With().Str("component", "predict").Logger(),
	}, nil
}

// Store returns the rating store backing the predictor.
func (p *Predictor) Store() *ratings.Store {
	return p.store
}

// Raw returns the unclamped prediction for user on movieID:
//
//	avg(user) + sum_v w(user, v, movie) * (r_v(movie) - avg(v))
//
// over every other user v that rated the movie, in the order the store first
// saw each user.
// Users who did not rate the movie are not visited at all. A movie without
// raters (or unknown to the store) yields the user's average.
func (p *Predictor) Raw(user *ratings.UserProfile, userID, movieID string) float64 {
	prediction := user.AverageRating

	movie, ok := p.store.Movie(movieID)
	if !ok {
		return prediction
	}

	for _, neighborID := range movie.Raters() {
		if neighborID == userID {
			continue
		}
		neighbor, ok := p.store.User(neighborID)
		if !ok {
			continue
		}
		w := p.weights.Weight(userID, neighborID, movieID)
		prediction += w * (neighbor.Ratings[movieID] - neighbor.AverageRating)
	}

	return prediction
}

// PredictProfile returns the clamped prediction for a profile already
// looked up by the caller.
func (p *Predictor) PredictProfile(user *ratings.UserProfile, userID, movieID string) float64 {
	return ClampRating(p.Raw(user, userID, movieID))
}

// PredictRating returns the clamped prediction for userID on movieID.
// It fails with ratings.ErrUnknownUser when the user has no training ratings.
func (p *Predictor) PredictRating(userID, movieID string) (float64, error) {
	user, ok := p.store.User(userID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ratings.ErrUnknownUser, userID)
	}

	rating := p.PredictProfile(user, userID, movieID)
	metrics.RecordPrediction("query")

	p.logger.Debug().
		Str("user_id", userID).
		Str("movie_id", movieID).
		Float64("rating", rating).
		Msg("predicted rating")

	return rating, nil
}
