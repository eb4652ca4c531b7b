// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

/*
Package services provides suture.Service implementations for serve mode.

Each service implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so supervisor events name it.

HTTPServerService adapts the blocking ListenAndServe/Shutdown pair of
*http.Server to a context: cancellation triggers a graceful shutdown bounded
by the configured timeout.

ReportMaintenanceService keeps the evaluation report store bounded. On start
and then once per interval it prunes history to the configured retention and
runs Badger value log GC. Errors are returned to the supervisor, which
restarts the service with backoff.
*/
package services
