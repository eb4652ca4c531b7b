// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package similarity computes and memoizes pairwise user weights.
//
// # Weight
//
// The weight between a target user a and a neighbor b, when predicting
// movie x, is a normalized dot product over the movies both rated other than x:
//
//	w(a, b, x) = sum_{m != x} (r_a(m) / norm_a) * (r_b(m) / norm_b)
//
// where norm is the running L2 norm kept on ratings.UserProfile.
//
// # Cache Keys
//
// The Cache stores one weight per unordered user pair. Keys are built by
// NewPairKey, which orders the two ids, so lookups in either direction share
// an entry. The excluded movie is not part of the default key; see Cache for
// the consequences and WithExcludedMovieKey for the opt-in alternative.
//
// # Thread Safety
//
// A Cache may be shared by concurrent predictions over a frozen store.
// Missing keys are computed at most once under contention.
package similarity
