// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package main is the ratingcf command.
//
// ratingcf trains a neighborhood collaborative filter on a movie rating file
// and either scores it against a held-out test file or answers per-user
// ranking queries.
//
// # Usage
//
//	ratingcf [-config path] [-json] <command> [flags]
//
// Commands:
//
//	evaluate                       predict every test record, print MAE and RMSE
//	query -user ID -year YYYY      rank the user's unseen movies from that year
//	serve                          expose predictions over HTTP until SIGINT/SIGTERM
//	interactive                    menu-driven session (default)
//
// # Configuration
//
// Settings come from built-in defaults, then config.yaml (or the file named
// by -config or CONFIG_PATH), then environment variables:
//
//	RATINGCF_TRAINING_PATH=TrainingRatings.txt
//	RATINGCF_TITLES_PATH=movie_titles.txt
//	RATINGCF_TEST_PATH=TestingRatings.txt
//	RATINGCF_REPORTS_PATH=/var/lib/ratingcf/reports
//	LOG_LEVEL=debug
//
// The interactive session prompts for any data path left unset.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/ratingcf/internal/config"
	"github.com/tomtom215/ratingcf/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

const usage = `usage: ratingcf [-config path] [-json] <command> [flags]

commands:
  evaluate                   predict the test file and print MAE/RMSE
  query -user ID -year YYYY  rank a user's unseen movies for a year
  serve                      run the HTTP API
  interactive                menu-driven session (default)

flags:
`

// run parses args, loads configuration and dispatches to a command. It
// returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ratingcf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	jsonOut := fs.Bool("json", false, "print results as JSON")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "ratingcf: %v\n", err)
		return 1
	}

	logCfg := cfg.Logging.ToLogging()
	logCfg.Output = stderr
	logging.Init(logCfg)

	a := newApp(cfg, stdin, stdout, *jsonOut)

	command := "interactive"
	rest := fs.Args()
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	switch command {
	case "evaluate":
		err = a.runEvaluate(ctx)
	case "query":
		err = a.runQuery(ctx, rest, stderr)
	case "serve":
		err = a.runServe(ctx)
	case "interactive":
		err = a.runInteractive(ctx)
	default:
		fmt.Fprintf(stderr, "ratingcf: unknown command %q\n\n", command)
		fs.Usage()
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	if err != nil {
		logging.Error().Err(err).Str("command", command).Msg("command failed")
		fmt.Fprintf(stderr, "ratingcf: %v\n", err)
		return 1
	}
	return 0
}
