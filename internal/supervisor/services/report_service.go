// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ReportMaintainer is the housekeeping side of report.Store.
type ReportMaintainer interface {
	Prune(retain int) (int, error)
	RunGC() error
}

// ReportMaintenanceService prunes report history down to retain entries
// and runs value log GC once per interval. The first pass runs at startup.
type ReportMaintenanceService struct {
	reports  ReportMaintainer
	retain   int
	interval time.Duration
	logger   zerolog.Logger
}

// NewReportMaintenanceService creates the service. retain <= 0 keeps every
// report; GC still runs.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReportMaintenanceService(reports ReportMaintainer, retain int, interval time.Duration, logger zerolog.Logger) *ReportMaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ReportMaintenanceService{
		reports:  reports,
		retain:   retain,
		interval: interval,
		logger:   logger.With().Str("component", "report-maintenance").Logger(),
	}
}

// Serve implements suture.Service. A failing pass returns its error so the
// supervisor restarts the service with backoff.
func (s *ReportMaintenanceService) Serve(ctx context.Context) error {
	if err := s.runOnce(); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.runOnce(); err != nil {
				return err
			}
		}
	}
}

func (s *ReportMaintenanceService) runOnce() error {
	if s.retain > 0 {
		pruned, err := s.reports.Prune(s.retain)
		if err != nil {
			return fmt.Errorf("prune reports: %w", err)
		}
		if pruned > 0 {
			s.logger.Info().Int("pruned", pruned).Int("retain", s.retain).Msg("pruned report history")
		}
	}
	if err := s.reports.RunGC(); err != nil {
		return fmt.Errorf("report store GC: %w", err)
	}
	return nil
}

// String names the service in supervisor events.
func (s *ReportMaintenanceService) String() string {
	return "report-maintenance"
}
