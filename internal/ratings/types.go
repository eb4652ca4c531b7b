// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package ratings

import "errors"

var (
	// ErrUnknownUser is returned when a query names a user absent from the store.
	ErrUnknownUser = errors.New("user is not in the training set")

	// ErrStoreFrozen is returned when ingestion is attempted after Freeze.
	ErrStoreFrozen = errors.New("rating store is frozen")

	// ErrInvalidRating is returned for NaN or infinite rating values.
	ErrInvalidRating = errors.New("rating must be a finite number")
)

// Rating is a single (movie, user, rating) triple. Training and test
// records share this shape.
type Rating struct {
	// MovieID is the movie identifier as it appears in the source file.
	MovieID string `json:"movie_id"`

	// UserID is the user identifier as it appears in the source file.
	UserID string `json:"user_id"`

	// Value is the rating, conventionally in [1, 5].
	Value float64 `json:"rating"`
}

// Title is a catalog entry naming a movie.
type Title struct {
	MovieID string `json:"movie_id"`
	Year    string `json:"year"`
	Name    string `json:"name"`
}

// UserProfile aggregates every rating a user has given.
type UserProfile struct {
	// AverageRating is the running average. Each new rating is blended with
	// the previous average: avg = (avg + r) / len(Ratings).
	AverageRating float64 `json:"average_rating"`

	// NormAvg is the running L2 norm of the user's ratings:
	// norm = sqrt(norm^2 + r^2). The name is historical.
	NormAvg float64 `json:"norm_avg"`

	// Ratings maps movie id to the rating given.
	Ratings map[string]float64 `json:"ratings"`

	// order holds movie ids in first-insertion order.
	order []string

	// seq is the user's position in the store's first-seen order.
	seq int
}

// EachRating calls fn for every rating in first-insertion order.
// Iteration stops early if fn returns false.
func (u *UserProfile) EachRating(fn func(movieID string, rating float64) bool) {
	for _, id := range u.order {
		if !fn(id, u.Ratings[id]) {
			return
		}
	}
}

// HasRated reports whether the user rated the movie.
func (u *UserProfile) HasRated(movieID string) bool {
	_, ok := u.Ratings[movieID]
	return ok
}

// MovieRecord aggregates every rating a movie has received.
type MovieRecord struct {
	// Name and Year come from the title catalog and stay empty when the
	// catalog has no entry for the movie.
	Name string `json:"name"`
	Year string `json:"year"`

	// AverageRating uses the same running rule as UserProfile.AverageRating.
	AverageRating float64 `json:"average_rating"`

	// Ratings maps user id to the rating received.
	Ratings map[string]float64 `json:"ratings"`

	// raters holds user ids in first-rating order until the store is
	// frozen, then in the store's user first-seen order.
	raters []string

	titled bool
}

// HasTitle reports whether a catalog entry was assigned to the movie.
func (m *MovieRecord) HasTitle() bool {
	return m.titled
}

// Raters returns the ids of users who rated the movie. Once the store is
// frozen they follow the order in which the store first saw each user, which
// is the order predictions sum neighbor contributions in. The returned slice
// must not be modified.
func (m *MovieRecord) Raters() []string {
	return m.raters
}
