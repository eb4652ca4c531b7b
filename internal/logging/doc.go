// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package logging provides the zerolog-based structured logger shared by
// every ratingcf component.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	log := logging.WithComponent("ingest")
//	log.Info().Int("records", n).Msg("training data loaded")
//
// Components receive a zerolog.Logger in their constructor and add their own
// "component" field. Code that only has a context uses Ctx, which adds the
// correlation_id of the current CLI run and the request_id of the current
// HTTP request when present:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("evaluation started")
//
// # Output
//
// JSON (default) writes one object per line:
//
//	{"level":"info","service":"ratingcf","component":"evaluate","mae":0.79,"time":"2026-10-14T10:30:00Z","message":"evaluation complete"}
//
// Console format is meant for terminals:
//
//	10:30:00 INF evaluation complete component=evaluate mae=0.79
//
// Logs go to stderr unless Config.Output says otherwise; the interactive CLI
// owns stdout.
//
// # slog Adapter
//
// SlogHandler lets slog consumers such as sutureslog write through zerolog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger("supervisor")}
package logging
