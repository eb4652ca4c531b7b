// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package api exposes predictions, per-year rankings and evaluation report
// history over HTTP with chi.
//
// Every JSON response uses one envelope:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":"...","query_time_ms":0}}
//	{"status":"error","data":null,"metadata":{...},"error":{"code":"UNKNOWN_USER","message":"..."}}
//
// Error codes: UNKNOWN_USER (404), VALIDATION_ERROR and INVALID_PARAMETER
// (400), REPORT_NOT_FOUND (404), REPORTS_DISABLED (503), RATE_LIMITED (429),
// NOT_FOUND, METHOD_NOT_ALLOWED.
//
// The handlers only read the frozen rating store. Concurrent requests share
// the similarity cache, which computes each weight once.
package api
