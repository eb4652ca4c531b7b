// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package ratings

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"
)

// Store owns every UserProfile and MovieRecord built during ingestion.
//
// A Store has two phases. During ingestion it is written by a single
// goroutine through RecordRating and AssignTitle. Freeze ends ingestion;
// after that the store is read-only and safe for concurrent readers.
type Store struct {
	users  map[string]*UserProfile
	movies map[string]*MovieRecord

	// First-seen order for deterministic iteration.
	userOrder  []string
	movieOrder []string

	ratingCount int
	frozen      atomic.Bool
}

// NewStore creates an empty store ready for ingestion.
func NewStore() *Store {
	return &Store{
		users:  make(map[string]*UserProfile),
		movies: make(map[string]*MovieRecord),
	}
}

// RecordRating folds one training rating into the user and movie aggregates.
//
// The running statistics are order dependent and reproduce the historical
// rule exactly:
//
//	avg  = (avg + r) / len(ratings)   // after inserting r
//	norm = sqrt(norm^2 + r^2)
//
// A repeated (user, movie) pair overwrites the stored rating but still
// updates both running statistics.
func (s *Store) RecordRating(movieID, userID string, rating float64) error {
	if s.frozen.Load() {
		return ErrStoreFrozen
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRating, rating)
	}

	user, ok := s.users[userID]
	if !ok {
		user = &UserProfile{
			AverageRating: rating,
			NormAvg:       rating,
			Ratings:       map[string]float64{movieID: rating},
			order:         []string{movieID},
			seq:           len(s.userOrder),
		}
		s.users[userID] = user
		s.userOrder = append(s.userOrder, userID)
	} else {
		if _, seen := user.Ratings[movieID]; !seen {
			user.order = append(user.order, movieID)
		}
		user.Ratings[movieID] = rating
		user.AverageRating = (user.AverageRating + rating) / float64(len(user.Ratings))
		user.NormAvg = math.Sqrt(user.NormAvg*user.NormAvg + rating*rating)
	}

	movie, ok := s.movies[movieID]
	if !ok {
		movie = &MovieRecord{
			AverageRating: rating,
			Ratings:       map[string]float64{userID: rating},
			raters:        []string{userID},
		}
		s.movies[movieID] = movie
		s.movieOrder = append(s.movieOrder, movieID)
	} else {
		if _, seen := movie.Ratings[userID]; !seen {
			movie.raters = append(movie.raters, userID)
		}
		movie.Ratings[userID] = rating
		movie.AverageRating = (movie.AverageRating + rating) / float64(len(movie.Ratings))
	}

	s.ratingCount++
	return nil
}

// AssignTitle sets name and year on an existing movie. Catalog entries for
// movies that received no training rating are ignored; the return value
// reports whether the title was applied.
func (s *Store) AssignTitle(t Title) (bool, error) {
	if s.frozen.Load() {
		return false, ErrStoreFrozen
	}
	movie, ok := s.movies[t.MovieID]
	if !ok {
		return false, nil
	}
	movie.Name = t.Name
	movie.Year = t.Year
	movie.titled = true
	return true, nil
}

// Freeze ends ingestion and puts every movie's raters into user first-seen
// order. It is idempotent.
func (s *Store) Freeze() {
	if s.frozen.Load() {
		return
	}
	for _, movie := range s.movies {
		raters := movie.raters
		sort.Slice(raters, func(i, j int) bool {
			return s.users[raters[i]].seq < s.users[raters[j]].seq
		})
	}
	s.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool {
	return s.frozen.Load()
}

// User returns the profile for userID.
func (s *Store) User(userID string) (*UserProfile, bool) {
	u, ok := s.users[userID]
	return u, ok
}

// Movie returns the record for movieID.
func (s *Store) Movie(movieID string) (*MovieRecord, bool) {
	m, ok := s.movies[movieID]
	return m, ok
}

// Users returns user ids in first-seen order. The slice must not be modified.
func (s *Store) Users() []string {
	return s.userOrder
}

// Movies returns movie ids in first-seen order. The slice must not be modified.
func (s *Store) Movies() []string {
	return s.movieOrder
}

// UserCount returns the number of distinct users.
func (s *Store) UserCount() int {
	return len(s.users)
}

// MovieCount returns the number of distinct movies.
func (s *Store) MovieCount() int {
	return len(s.movies)
}

// RatingCount returns the number of ratings recorded, including overwrites.
func (s *Store) RatingCount() int {
	return s.ratingCount
}
