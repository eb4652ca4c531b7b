// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package predict turns neighbor weights into rating estimates.
//
// A prediction starts from the target user's running average and adds, for
// every other user who rated the movie, the neighbor's deviation from their
// own average scaled by the pair weight. The result is clamped to [1, 5]
// and rounded half to even by ClampRating, which evaluation, ranking, the
// HTTP API and the interactive CLI all share.
//
//	cache, _ := similarity.NewCache(store)
//	p, _ := predict.New(store, cache, logger)
//	rating, err := p.PredictRating("1488844", "8")
//	ranked, err := p.RankMoviesForYear("1488844", "2004")
package predict
