// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type fakeReports struct {
	mu       sync.Mutex
	prunes   []int
	gcs      int
	pruneErr error
	gcErr    error
}

func (f *fakeReports) Prune(retain int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prunes = append(f.prunes, retain)
	return 1, f.pruneErr
}

func (f *fakeReports) RunGC() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gcs++
	return f.gcErr
}

func (f *fakeReports) counts() (prunes, gcs int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prunes), f.gcs
}

var _ suture.Service = (*ReportMaintenanceService)(nil)

func TestReportMaintenanceService_Ticks(t *testing.T) {
	reports := &fakeReports{}
	svc := NewReportMaintenanceService(reports, 5, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Serve() error = %v, want context.DeadlineExceeded", err)
	}

	prunes, gcs := reports.counts()
	if prunes < 3 || gcs != prunes {
		t.Errorf("prunes = %d gcs = %d, want at least 3 of each and equal", prunes, gcs)
	}
	if reports.prunes[0] != 5 {
		t.Errorf("Prune retain = %d, want 5", reports.prunes[0])
	}
}

func TestReportMaintenanceService_NoRetention(t *testing.T) {
	reports := &fakeReports{}
	svc := NewReportMaintenanceService(reports, 0, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	prunes, gcs := reports.counts()
	if prunes != 0 {
		t.Errorf("prunes = %d, want 0 with retention disabled", prunes)
	}
	if gcs != 1 {
		t.Errorf("gcs = %d, want 1 startup pass", gcs)
	}
}

func TestReportMaintenanceService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		reports *fakeReports
	}{
		{name: "prune", reports: &fakeReports{pruneErr: errors.New("disk full")}},
		{name: "gc", reports: &fakeReports{gcErr: errors.New("value log corrupt")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReportMaintenanceService(tt.reports, 3, time.Hour, zerolog.Nop())
			err := svc.Serve(context.Background())
			if err == nil {
				t.Fatal("Serve() error = nil, want maintenance failure")
			}
			if errors.Is(err, context.Canceled) {
				t.Errorf("Serve() error = %v, want underlying error", err)
			}
		})
	}
}

func TestNewReportMaintenanceService_DefaultInterval(t *testing.T) {
	svc := NewReportMaintenanceService(&fakeReports{}, 1, 0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
	if svc.String() != "report-maintenance" {
		t.Errorf("String() = %q", svc.String())
	}
}
