// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package middleware provides the net/http middleware of the ratingcf API:
// request ids, access logging, Prometheus instrumentation and per-IP rate
// limiting. All of them have the func(http.Handler) http.Handler shape used
// by chi's Use.
package middleware
