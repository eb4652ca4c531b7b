// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package ingest parses the comma-separated input files and loads them into
// a ratings.Store.
//
// Formats:
//
//	training / test:  movieId,userId,rating
//	catalog:          movieId,year,name
//
// Rating lines must have exactly three fields. Catalog names are everything
// after the second comma and may themselves contain commas. A trailing CR is
// stripped from every line. The first malformed line aborts the pass with a
// *ParseError naming file and line.
package ingest
