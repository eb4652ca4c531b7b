// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package similarity

import "github.com/tomtom215/ratingcf/internal/ratings"

// Compute returns the neighbor weight between two users and the number of
// movies they share once exclude is removed:
//
//	weight = sum over common m != exclude of (a.r[m] / a.norm) * (b.r[m] / b.norm)
//
// Ratings are divided by each user's running norm (UserProfile.NormAvg), not
// by the norm of the common sub-vector. Users with no other common movie get
// weight 0 and common 0.
//
// The sum runs over a's ratings in insertion order. Callers that need the
// result to be exactly symmetric pass the users in canonical order, as the
// Cache does.
func Compute(a, b *ratings.UserProfile, exclude string) (weight float64, common int) {
	if a == nil || b == nil || a.NormAvg == 0 || b.NormAvg == 0 {
		return 0, 0
	}

	a.EachRating(func(movieID string, ra float64) bool {
		if movieID == exclude {
			return true
		}
		rb, ok := b.Ratings[movieID]
		if !ok {
			return true
		}
		weight += (ra / a.NormAvg) * (rb / b.NormAvg)
		common++
		return true
	})

	return weight, common
}
