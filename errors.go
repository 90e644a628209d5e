package scf

import "errors"

// ErrInvalidCapacity is returned by New when initialCapacity is zero.
var ErrInvalidCapacity = errors.New("scf: initial capacity must be at least 1")

// ErrInvalidFPP is returned by New when the requested false positive
// probability is not in (0, 1).
var ErrInvalidFPP = errors.New("scf: false positive probability must be in (0, 1)")

// ErrInvalidEntriesPerBucket is returned by New when EntriesPerBucket is zero.
var ErrInvalidEntriesPerBucket = errors.New("scf: entries per bucket must be at least 1")

// ErrInvalidGrowthFactor is returned by New when GrowthFactor is less than 2.
var ErrInvalidGrowthFactor = errors.New("scf: growth factor must be at least 2")

// ErrInvalidTighteningRatio is returned by New when TighteningRatio is not
// in (0, 1).
var ErrInvalidTighteningRatio = errors.New("scf: tightening ratio must be in (0, 1)")

// ErrMissingHasher is returned by New when opts.Hasher is nil.
var ErrMissingHasher = errors.New("scf: Options.Hasher must not be nil")

// ErrMissingRNG is returned by New when opts.RNG is nil.
var ErrMissingRNG = errors.New("scf: Options.RNG must not be nil")

// errGrowthFilterRefused is an internal invariant violation: a brand new,
// empty, oversized filter refused its very first insert. It should be
// unreachable with a growth factor >= 2.
var errGrowthFilterRefused = errors.New("scf: freshly grown filter refused its first insert")
