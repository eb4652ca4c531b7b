// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/ratingcf/internal/validation"
)

// ErrMissingPath is returned by RequireData when a needed input is unset.
var ErrMissingPath = errors.New("input path not configured")

// Validate checks struct tags, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when server.rate_limit_requests is set")
	}
	if c.Reports.Enabled() && c.Reports.GCInterval == 0 {
		return fmt.Errorf("reports.gc_interval must be positive when reports.path is set")
	}
	return nil
}

// RequireData checks that the training and catalog paths are set, and the
// test path when withTest is true.
func (d DataConfig) RequireData(withTest bool) error {
	switch {
	case d.TrainingPath == "":
		return fmt.Errorf("%w: data.training_path (RATINGCF_TRAINING_PATH)", ErrMissingPath)
	case d.TitlesPath == "":
		return fmt.Errorf("%w: data.titles_path (RATINGCF_TITLES_PATH)", ErrMissingPath)
	case withTest && d.TestPath == "":
		return fmt.Errorf("%w: data.test_path (RATINGCF_TEST_PATH)", ErrMissingPath)
	}
	return nil
}
