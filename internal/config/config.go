// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package config

import (
	"time"

	"github.com/tomtom215/ratingcf/internal/logging"
)

// Config is the complete application configuration.
type Config struct {
	Data       DataConfig       `koanf:"data"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Evaluate   EvaluateConfig   `koanf:"evaluate"`
	Server     ServerConfig     `koanf:"server"`
	Reports    ReportsConfig    `koanf:"reports"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// DataConfig names the input files. Empty paths are prompted for by the
// interactive command and rejected by the others.
type DataConfig struct {
	TrainingPath string `koanf:"training_path"`
	TitlesPath   string `koanf:"titles_path"`
	TestPath     string `koanf:"test_path"`
}

// SimilarityConfig controls the weight cache.
type SimilarityConfig struct {
	// KeyByExcludedMovie includes the excluded movie in the cache key, so
	// every (pair, movie) weight is computed exactly. The default keys on the
	// user pair alone and reuses the first weight computed for it.
	KeyByExcludedMovie bool `koanf:"key_by_excluded_movie"`
}

// EvaluateConfig controls test-set evaluation.
type EvaluateConfig struct {
	// ProgressEvery logs progress after this many matched records; 0 disables.
	ProgressEvery int `koanf:"progress_every" validate:"gte=0"`
}

// ServerConfig configures the HTTP surface of the serve command.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RateLimitRequests per RateLimitWindow per client IP. Zero disables
	// rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// ReportsConfig configures the evaluation report history. An empty Path
// disables it.
type ReportsConfig struct {
	Path       string        `koanf:"path"`
	Retain     int           `koanf:"retain" validate:"gte=0"`
	GCInterval time.Duration `koanf:"gc_interval" validate:"gte=0"`
}

// Enabled reports whether reports are persisted.
func (r ReportsConfig) Enabled() bool {
	return r.Path != ""
}

// LoggingConfig mirrors logging.Config without the writer.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ToLogging converts the section for logging.Init. Output is left to the
// caller.
func (l LoggingConfig) ToLogging() logging.Config {
	return logging.Config{Level: l.Level, Format: l.Format, Caller: l.Caller}
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// defaultConfig returns the built-in defaults, loaded before any file or
// environment variable.
func defaultConfig() *Config {
	return &Config{
		Evaluate: EvaluateConfig{ProgressEvery: 10000},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Reports: ReportsConfig{
			Path:       "",
			Retain:     50,
			GCInterval: 10 * time.Minute,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}
