// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tomtom215/ratingcf/internal/logging"
	"github.com/tomtom215/ratingcf/internal/metrics"
	"github.com/tomtom215/ratingcf/internal/ratings"
)

// Metric label values for the two ingestion kinds.
const (
	KindRatings = "ratings"
	KindTitles  = "titles"
)

// ctxCheckEvery is how many lines are read between context checks.
const ctxCheckEvery = 4096

// Stats summarizes an ingestion pass.
type Stats struct {
	// Records is the number of lines successfully applied or read.
	Records int `json:"records"`

	// Users and Movies are store cardinalities after the pass.
	Users  int `json:"users"`
	Movies int `json:"movies"`

	// Titled counts catalog entries assigned to a known movie.
	Titled int `json:"titled"`

	// Ignored counts catalog entries whose movie has no training rating.
	Ignored int `json:"ignored"`

	Duration time.Duration `json:"duration"`
}

// LoadRatings reads training records from r into store. The pass stops at
// the first malformed line and returns its *ParseError; records applied
// before it remain in the store.
func LoadRatings(ctx context.Context, store *ratings.Store, r io.Reader, source string) (Stats, error) {
	start := time.Now()
	logger := logging.Ctx(ctx).With().Str("component", "ingest").Str("source", source).Logger()

	var stats Stats
	reader := NewRatingReader(r, source)

	err := func() error {
		for {
			if stats.Records%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			rec, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			if err := store.RecordRating(rec.MovieID, rec.UserID, rec.Value); err != nil {
				return fmt.Errorf("%s:%d: %w", source, reader.Line(), err)
			}
			stats.Records++
		}
	}()

	stats.Users = store.UserCount()
	stats.Movies = store.MovieCount()
	stats.Duration = time.Since(start)
	metrics.RecordIngest(KindRatings, stats.Records, stats.Duration, err)
	metrics.UpdateStoreGauges(stats.Users, stats.Movies)

	if err != nil {
		logger.Error().Err(err).Int("records", stats.Records).Msg("training ingestion aborted")
		return stats, err
	}

	logger.Info().
		Int("records", stats.Records).
		Int("users", stats.Users).
		Int("movies", stats.Movies).
		Dur("duration", stats.Duration).
		Msg("training data loaded")
	return stats, nil
}

// LoadTitles reads the movie catalog from r and attaches names and years to
// movies already present in store. Entries for unknown movies are counted in
// Stats.Ignored.
func LoadTitles(ctx context.Context, store *ratings.Store, r io.Reader, source string) (Stats, error) {
	start := time.Now()
	logger := logging.Ctx(ctx).With().Str("component", "ingest").Str("source", source).Logger()

	var stats Stats
	reader := NewTitleReader(r, source)

	err := func() error {
		for {
			if stats.Records%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}

			title, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			stats.Records++

			applied, err := store.AssignTitle(title)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", source, reader.Line(), err)
			}
			if applied {
				stats.Titled++
			} else {
				stats.Ignored++
			}
		}
	}()

	stats.Users = store.UserCount()
	stats.Movies = store.MovieCount()
	stats.Duration = time.Since(start)
	metrics.RecordIngest(KindTitles, stats.Records, stats.Duration, err)

	if err != nil {
		logger.Error().Err(err).Int("records", stats.Records).Msg("catalog ingestion aborted")
		return stats, err
	}

	logger.Info().
		Int("records", stats.Records).
		Int("titled", stats.Titled).
		Int("ignored", stats.Ignored).
		Dur("duration", stats.Duration).
		Msg("movie catalog loaded")
	return stats, nil
}

// LoadFiles loads the training file, then the catalog, and freezes store.
// An empty titlesPath skips the catalog; movies then stay untitled.
func LoadFiles(ctx context.Context, store *ratings.Store, trainingPath, titlesPath string) (Stats, error) {
	start := time.Now()

	stats, err := loadFile(trainingPath, func(f io.Reader) (Stats, error) {
		return LoadRatings(ctx, store, f, trainingPath)
	})
	if err != nil {
		return stats, err
	}

	if titlesPath != "" {
		titles, err := loadFile(titlesPath, func(f io.Reader) (Stats, error) {
			return LoadTitles(ctx, store, f, titlesPath)
		})
		stats.Titled = titles.Titled
		stats.Ignored = titles.Ignored
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
	}

	store.Freeze()
	stats.Duration = time.Since(start)
	return stats, nil
}

// OpenRatings opens a ratings file for streaming. The caller closes the
// returned file.
func OpenRatings(path string) (*RatingReader, io.Closer, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewRatingReader(f, path), f, nil
}

func loadFile(path string, fn func(io.Reader) (Stats, error)) (Stats, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return Stats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}
