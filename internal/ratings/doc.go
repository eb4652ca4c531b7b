// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package ratings holds the in-memory rating model: one UserProfile per user
// and one MovieRecord per movie, each with a sparse rating map and running
// statistics.
//
// # Lifecycle
//
// A Store is populated by a single ingestion pass and then frozen:
//
//	store := ratings.NewStore()
//	for _, r := range training {
//	    if err := store.RecordRating(r.MovieID, r.UserID, r.Value); err != nil {
//	        return err
//	    }
//	}
//	store.Freeze()
//
// Entities are never deleted. After Freeze the store is read-only and may be
// shared by concurrent readers; the similarity cache requires a frozen store.
//
// # Running Statistics
//
// UserProfile.AverageRating and MovieRecord.AverageRating are not true means.
// Each new rating is blended with the previous average and divided by the
// post-insertion rating count. UserProfile.NormAvg is the running L2 norm.
// Both are reproduced exactly for compatibility with existing results.
//
// # Iteration Order
//
// Users, movies and each profile's ratings are iterated in first-insertion
// order so that floating point sums are deterministic across runs.
package ratings
