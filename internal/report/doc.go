// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package report keeps a history of evaluation runs in BadgerDB.
//
// Every evaluate command saves one Report: input files, store sizes, MAE,
// RMSE and similarity cache counters. The HTTP API lists them and the
// serve-mode maintenance service prunes them to the configured retention
// and runs value log GC.
package report
