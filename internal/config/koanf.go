// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ratingcf/config.yaml",
	"/etc/ratingcf/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variables (lower-cased) to config paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"ratingcf_training_path": "data.training_path",
	"ratingcf_titles_path":   "data.titles_path",
	"ratingcf_test_path":     "data.test_path",

	"ratingcf_key_by_excluded_movie": "similarity.key_by_excluded_movie",
	"ratingcf_progress_every":        "evaluate.progress_every",

	"ratingcf_host":                "server.host",
	"ratingcf_port":                "server.port",
	"ratingcf_read_timeout":        "server.read_timeout",
	"ratingcf_write_timeout":       "server.write_timeout",
	"ratingcf_idle_timeout":        "server.idle_timeout",
	"ratingcf_shutdown_timeout":    "server.shutdown_timeout",
	"ratingcf_rate_limit_requests": "server.rate_limit_requests",
	"ratingcf_rate_limit_window":   "server.rate_limit_window",

	"ratingcf_reports_path":        "reports.path",
	"ratingcf_reports_retain":      "reports.retain",
	"ratingcf_reports_gc_interval": "reports.gc_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// Load builds the configuration from three layers, later ones winning:
//
//  1. built-in defaults
//  2. a YAML file: path if non-empty, else $CONFIG_PATH, else the first
//     existing entry of DefaultConfigPaths (optional)
//  3. environment variables listed in envMappings
//
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps an environment variable name to its config path,
// or "" to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
