// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package predict

import (
	"math"

	"github.com/tomtom215/ratingcf/internal/metrics"
)

const (
	// MinRating is the lowest value on the rating scale.
	MinRating = 1.0

	// MaxRating is the highest value on the rating scale.
	MaxRating = 5.0
)

// ClampRating maps a raw prediction onto the rating scale. Values below
// MinRating become MinRating, values above MaxRating become MaxRating, and
// everything else is rounded half to even (2.5 -> 2, 3.5 -> 4).
//
// Every call site that reports a predicted rating goes through this function.
func ClampRating(raw float64) float64 {
	switch {
	case raw < MinRating:
		metrics.RecordClamp("low")
		return MinRating
	case raw > MaxRating:
		metrics.RecordClamp("high")
		return MaxRating
	default:
		return math.RoundToEven(raw)
	}
}
