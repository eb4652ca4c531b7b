// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

/*
Package config loads ratingcf configuration with koanf.

# Sources

Values are layered, later layers winning:

 1. built-in defaults (defaultConfig)
 2. an optional YAML file: the -config flag, $CONFIG_PATH, ./config.yaml,
    or /etc/ratingcf/config.yaml
 3. environment variables

# Example File

	data:
	  training_path: TrainingRatings.txt
	  titles_path: movie_titles.txt
	  test_path: TestingRatings.txt
	similarity:
	  key_by_excluded_movie: false
	evaluate:
	  progress_every: 10000
	server:
	  host: 0.0.0.0
	  port: 8080
	  rate_limit_requests: 100
	  rate_limit_window: 1m
	reports:
	  path: /var/lib/ratingcf/reports
	  retain: 50
	  gc_interval: 10m
	logging:
	  level: info
	  format: json

# Environment Variables

	RATINGCF_TRAINING_PATH, RATINGCF_TITLES_PATH, RATINGCF_TEST_PATH
	RATINGCF_KEY_BY_EXCLUDED_MOVIE, RATINGCF_PROGRESS_EVERY
	RATINGCF_HOST, RATINGCF_PORT, RATINGCF_*_TIMEOUT
	RATINGCF_RATE_LIMIT_REQUESTS, RATINGCF_RATE_LIMIT_WINDOW
	RATINGCF_REPORTS_PATH, RATINGCF_REPORTS_RETAIN, RATINGCF_REPORTS_GC_INTERVAL
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Validation runs struct tags through internal/validation, then checks rules
that span fields.
*/
package config
