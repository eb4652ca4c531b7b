// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package similarity

// PairKey identifies an unordered pair of users. Lo <= Hi always holds, so
// (a, b) and (b, a) produce the same key.
//
// Movie is empty unless the cache was built WithExcludedMovieKey.
type PairKey struct {
	Lo    string
	Hi    string
	Movie string
}

// NewPairKey returns the canonical key for the unordered pair {a, b}.
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// String encodes the key for use with singleflight.
func (k PairKey) String() string {
	return k.Lo + "\x00" + k.Hi + "\x00" + k.Movie
}
