// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingcf/internal/api"
	"github.com/tomtom215/ratingcf/internal/logging"
	"github.com/tomtom215/ratingcf/internal/report"
	"github.com/tomtom215/ratingcf/internal/supervisor"
	"github.com/tomtom215/ratingcf/internal/supervisor/services"
)

func (a *app) runEvaluate(ctx context.Context) error {
	data := a.cfg.Data
	if err := data.RequireData(true); err != nil {
		return err
	}
	if err := a.loadModel(ctx, data.TrainingPath, data.TitlesPath); err != nil {
		return err
	}

	out, err := a.evaluateFile(ctx, data.TestPath)
	if err != nil {
		return err
	}

	if a.json {
		return a.writeJSON(out)
	}
	return renderEvaluation(a.stdout, out)
}

func (a *app) runQuery(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(stderr)
	userID := fs.String("user", "", "user id from the training set")
	year := fs.String("year", "", "release year to rank")
	limit := fs.Int("limit", 0, "show at most this many movies (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" || *year == "" {
		fmt.Fprintln(stderr, "query requires -user and -year")
		fs.PrintDefaults()
		return errUsage
	}

	data := a.cfg.Data
	if err := data.RequireData(false); err != nil {
		return err
	}
	if err := a.loadModel(ctx, data.TrainingPath, data.TitlesPath); err != nil {
		return err
	}

	ranked, err := a.rank(*userID, *year)
	if err != nil {
		return err
	}
	if *limit > 0 && len(ranked) > *limit {
		ranked = ranked[:*limit]
	}

	if a.json {
		return a.writeJSON(ranked)
	}
	return renderRanking(a.stdout, ranked)
}

func (a *app) runServe(ctx context.Context) error {
	data := a.cfg.Data
	if err := data.RequireData(false); err != nil {
		return err
	}
	if err := a.loadModel(ctx, data.TrainingPath, data.TitlesPath); err != nil {
		return err
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// Left as a nil interface when history is disabled; the handler then
	// answers 503.
	var reports api.ReportReader
	if a.cfg.Reports.Enabled() {
		store, err := report.Open(a.cfg.Reports.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				a.logger.Error().Err(err).Msg("error closing report store")
			}
		}()
		reports = store
		tree.AddMaintenanceService(services.NewReportMaintenanceService(
			store, a.cfg.Reports.Retain, a.cfg.Reports.GCInterval, a.logger))
	}

	srv := a.cfg.Server
	// The server answers prediction and ranking queries only, so one cache
	// serves it for the lifetime of the process.
	predictor, cache, err := a.newPredictor()
	if err != nil {
		return err
	}
	handler := api.NewHandler(predictor, cache, reports)
	server := &http.Server{
		Addr: srv.Addr(),
		Handler: api.NewRouter(handler, api.RouterConfig{
			RateLimitRequests: srv.RateLimitRequests,
			RateLimitWindow:   srv.RateLimitWindow,
		}),
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
		IdleTimeout:  srv.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, srv.Addr(), srv.ShutdownTimeout, a.logger))

	a.logger.Info().
		Str("addr", srv.Addr()).
		Int("users", a.store.UserCount()).
		Int("movies", a.store.MovieCount()).
		Bool("reports", a.cfg.Reports.Enabled()).
		Msg("starting supervisor tree")

	err = tree.Serve(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		a.logger.Info().Msg("shutdown complete")
		return nil
	}
	return err
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
