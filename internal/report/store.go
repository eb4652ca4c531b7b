// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package report

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/ratingcf/internal/metrics"
)

// Key layout:
//
//	report:<20-digit unix nanos>:<run id>  -> JSON Report
//	report-id:<run id>                     -> primary key
//
// Zero-padded timestamps keep primary keys in chronological order.
const (
	reportPrefix = "report:"
	indexPrefix  = "report-id:"
)

var (
	// ErrReportNotFound is returned when no report has the requested id.
	ErrReportNotFound = errors.New("report not found")

	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("report store is closed")
)

// Store persists evaluation reports in BadgerDB.
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

// Open opens or creates a report store in directory path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return &Store{db: db}, nil
}

func primaryKey(r *Report) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", reportPrefix, r.FinishedAt.UnixNano(), r.RunID))
}

// Save writes r. Saving a report with an existing run id replaces it.
func (s *Store) Save(r *Report) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if r.RunID == "" {
		return errors.New("report has no run id")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	key := primaryKey(r)
	idx := []byte(indexPrefix + r.RunID)

	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(idx)
		switch {
		case err == nil:
			old, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := txn.Delete(old); err != nil {
				return err
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(idx, key)
	})
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.RunID, err)
	}

	metrics.RecordReportSaved()
	return nil
}

// Get returns the report with runID, or ErrReportNotFound.
func (s *Store) Get(runID string) (*Report, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var r Report
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(indexPrefix + runID))
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err = txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", runID, err)
	}
	return &r, nil
}

// List returns up to limit reports, newest first. A limit of 0 or less
// returns all of them.
func (s *Store) List(limit int) ([]Report, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	reports := []Report{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(reportPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seekLast()); it.Valid(); it.Next() {
			if limit > 0 && len(reports) >= limit {
				break
			}
			var r Report
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			reports = append(reports, r)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// seekLast is a key that sorts after every primary key, for reverse seeks.
func seekLast() []byte {
	return append([]byte(reportPrefix), 0xFF)
}

// Prune keeps the newest retain reports and deletes the rest. It returns
// the number deleted. A retain of 0 or less deletes nothing.
func (s *Store) Prune(retain int) (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	if retain <= 0 {
		return 0, nil
	}

	type doomed struct {
		key   []byte
		runID string
	}
	var victims []doomed

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(reportPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		seen := 0
		for it.Seek(seekLast()); it.Valid(); it.Next() {
			seen++
			if seen <= retain {
				continue
			}
			key := it.Item().KeyCopy(nil)
			victims = append(victims, doomed{key: key, runID: runIDFromKey(key)})
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan reports: %w", err)
	}
	if len(victims) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, v := range victims {
		if err := wb.Delete(v.key); err != nil {
			return 0, fmt.Errorf("delete report: %w", err)
		}
		if err := wb.Delete([]byte(indexPrefix + v.runID)); err != nil {
			return 0, fmt.Errorf("delete report index: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush deletes: %w", err)
	}

	metrics.RecordReportsPruned(len(victims))
	return len(victims), nil
}

// runIDFromKey extracts the run id from a primary key.
func runIDFromKey(key []byte) string {
	// report:<20 digits>:<run id>
	offset := len(reportPrefix) + 20 + 1
	if len(key) <= offset {
		return ""
	}
	return string(key[offset:])
}

// RunGC reclaims value log space. It is a no-op for in-memory stores.
func (s *Store) RunGC() error {
	if s.closed.Load() {
		return ErrClosed
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
