package scf

import (
	"go.uber.org/zap"

	"scf/cuckoo"
	cuckoohash "scf/cuckoo/hash"
	cuckoorand "scf/cuckoo/rand"
)

// Hasher is the capability contract a Filter needs from its hash function:
// a deterministic 64-bit digest of an opaque byte slice. See package
// cuckoo/hash for concrete implementations.
type Hasher = cuckoo.Hasher

// RNG is the capability contract a Filter needs from its random source:
// uniform 64-bit words, consulted only during Insert's eviction path. See
// package cuckoo/rand for concrete implementations.
type RNG = cuckoo.RNG

// Options configures a Filter at construction. Use DefaultOptions and its
// WithXxx methods rather than constructing Options directly, the same
// builder shape the teacher's storage-engine Options use.
type Options struct {
	EntriesPerBucket uint64
	GrowthFactor     uint64
	TighteningRatio  float64
	MaxKicks         uint32
	Hasher           Hasher
	RNG              RNG
	Logger           *zap.Logger

	// ItemCache, when true, makes the filter retain every item passed to
	// Insert so the no-argument ShrinkToFit can reconstruct the stack
	// without the caller supplying an item stream. Off by default: it
	// trades the filter's O(1)-per-item memory profile for O(n).
	ItemCache bool

	// Name becomes the "name" const label on the collector returned by
	// Filter.Stats, so metrics from multiple filters in one process don't
	// collide when registered together.
	Name string
}

// DefaultOptions returns the default configuration: 4 entries per bucket,
// growth factor 2, tightening ratio 0.5, 512 max kicks, the xxhash/v2
// default hasher, the fastrand-go default RNG, no logging, and no item
// cache.
func DefaultOptions() Options {
	return Options{
		EntriesPerBucket: 4,
		GrowthFactor:     2,
		TighteningRatio:  0.5,
		MaxKicks:         512,
		Hasher:           cuckoohash.NewXXHash64(),
		RNG:              cuckoorand.NewFastRand(),
		Logger:           zap.NewNop(),
		ItemCache:        false,
		Name:             "scf",
	}
}

// WithName overrides the "name" const label used on the collector returned
// by Filter.Stats.
func (o Options) WithName(name string) Options {
	o.Name = name
	return o
}

// WithEntriesPerBucket overrides the number of entries per bucket.
func (o Options) WithEntriesPerBucket(b uint64) Options {
	o.EntriesPerBucket = b
	return o
}

// WithGrowthFactor overrides the per-filter capacity growth multiplier.
func (o Options) WithGrowthFactor(s uint64) Options {
	o.GrowthFactor = s
	return o
}

// WithTighteningRatio overrides the per-filter false-positive budget ratio.
func (o Options) WithTighteningRatio(r float64) Options {
	o.TighteningRatio = r
	return o
}

// WithMaxKicks overrides the eviction chain length cap.
func (o Options) WithMaxKicks(k uint32) Options {
	o.MaxKicks = k
	return o
}

// WithHasher overrides the hasher used to derive fingerprints and bucket
// indices.
func (o Options) WithHasher(h Hasher) Options {
	o.Hasher = h
	return o
}

// WithRNG overrides the random source used during eviction.
func (o Options) WithRNG(r RNG) Options {
	o.RNG = r
	return o
}

// WithLogger overrides the logger used for lifecycle events (filter grows,
// shrink_to_fit). The default is a no-op logger.
func (o Options) WithLogger(l *zap.Logger) Options {
	o.Logger = l
	return o
}

// WithItemCache enables or disables the internal item cache that backs the
// no-argument ShrinkToFit.
func (o Options) WithItemCache(enabled bool) Options {
	o.ItemCache = enabled
	return o
}
