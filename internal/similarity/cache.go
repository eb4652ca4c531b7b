// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package similarity

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/ratingcf/internal/metrics"
	"github.com/tomtom215/ratingcf/internal/ratings"
)

// ErrStoreNotFrozen is returned by NewCache when ingestion is still open.
var ErrStoreNotFrozen = errors.New("similarity cache requires a frozen rating store")

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Option configures a Cache.
type Option func(*Cache)

// WithExcludedMovieKey keys weights by (pair, excluded movie) instead of the
// pair alone. Every prediction then uses the weight computed for its own
// excluded movie, at the cost of one computation per (pair, movie).
//
// This changes results relative to the default pair-only keying and must be
// enabled explicitly.
func WithExcludedMovieKey() Option {
	return func(c *Cache) {
		c.keyByMovie = true
	}
}

// Cache memoizes pairwise user weights for one run over a frozen store.
//
// By default the key is the unordered user pair only. The first weight
// computed for a pair, with whatever movie that lookup excluded, is reused
// for every later lookup of the same pair regardless of its excluded movie.
// Results are therefore record-order dependent, and this approximation is
// kept so that error figures stay comparable with earlier runs.
//
// Cache is safe for concurrent use. Concurrent lookups of a missing key run
// a single computation.
type Cache struct {
	store      *ratings.Store
	keyByMovie bool

	mu      sync.RWMutex
	weights map[PairKey]float64
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates an empty cache over store. The store must be frozen.
func NewCache(store *ratings.Store, opts ...Option) (*Cache, error) {
	if store == nil || !store.Frozen() {
		return nil, ErrStoreNotFrozen
	}
	c := &Cache{
		store:   store,
		weights: make(map[PairKey]float64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// KeyByExcludedMovie reports whether WithExcludedMovieKey is in effect.
func (c *Cache) KeyByExcludedMovie() bool {
	return c.keyByMovie
}

// Weight returns the weight neighbor userB contributes when predicting
// excludeMovie for userA. Unknown users and pairs without another common
// movie yield 0.
func (c *Cache) Weight(userA, userB, excludeMovie string) float64 {
	key := NewPairKey(userA, userB)
	if c.keyByMovie {
		key.Movie = excludeMovie
	}

	c.mu.RLock()
	w, ok := c.weights[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		metrics.RecordSimilarityLookup(true)
		return w
	}

	computed := false
	v, _, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// Another caller may have stored the key between RUnlock and Do.
		c.mu.RLock()
		if w, ok := c.weights[key]; ok {
			c.mu.RUnlock()
			return w, nil
		}
		c.mu.RUnlock()

		lo, _ := c.store.User(key.Lo)
		hi, _ := c.store.User(key.Hi)
		w, _ := Compute(lo, hi, excludeMovie)
		computed = true

		c.mu.Lock()
		c.weights[key] = w
		size := len(c.weights)
		c.mu.Unlock()
		metrics.SimilarityCacheSize.Set(float64(size))
		return w, nil
	})

	// Only the caller that ran the computation counts a miss.
	if computed {
		c.misses.Add(1)
		metrics.RecordSimilarityLookup(false)
	} else {
		c.hits.Add(1)
		metrics.RecordSimilarityLookup(true)
	}

	return v.(float64)
}

// Stats returns a snapshot of hit, miss and size counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	size := len(c.weights)
	c.mu.RUnlock()
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   size,
	}
}
