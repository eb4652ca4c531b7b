// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package predict

import (
	"fmt"
	"sort"

	"github.com/tomtom215/ratingcf/internal/metrics"
	"github.com/tomtom215/ratingcf/internal/ratings"
)

// RankedMovie is one row of a ranking query.
type RankedMovie struct {
	MovieID string  `json:"movie_id"`
	Title   string  `json:"title"`
	Rating  float64 `json:"rating"`
}

// RankMoviesForYear predicts every movie released in year that userID has
// not rated yet. Results are ordered by descending clamped rating, then by
// ascending title, then by movie id.
//
// Only movies with a catalog entry carry a year, so untitled movies never
// appear. The result is empty (not nil) when no movie qualifies.
func (p *Predictor) RankMoviesForYear(userID, year string) ([]RankedMovie, error) {
	user, ok := p.store.User(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ratings.ErrUnknownUser, userID)
	}

	ranked := make([]RankedMovie, 0)
	for _, movieID := range p.store.Movies() {
		movie, _ := p.store.Movie(movieID)
		if !movie.HasTitle() || movie.Year != year || user.HasRated(movieID) {
			continue
		}
		ranked = append(ranked, RankedMovie{
			MovieID: movieID,
			Title:   movie.Name,
			Rating:  p.PredictProfile(user, userID, movieID),
		})
		metrics.RecordPrediction("rank")
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		if ranked[i].Title != ranked[j].Title {
			return ranked[i].Title < ranked[j].Title
		}
		return ranked[i].MovieID < ranked[j].MovieID
	})

	p.logger.Debug().
		Str("user_id", userID).
		Str("year", year).
		Int("movies", len(ranked)).
		Msg("ranked movies for year")

	return ranked, nil
}
