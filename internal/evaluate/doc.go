// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package evaluate measures prediction error against held-out test records.
//
// For every test record whose user exists in the training set the
// evaluator predicts the rating, then reports
//
//	MAE  = sum |predicted - actual| / n
//	RMSE = sqrt(sum (predicted - actual)^2 / n)
//
// Records of unknown users are skipped. A run in which nothing matched fails
// with ErrEmptyEvaluation rather than dividing by zero.
package evaluate
