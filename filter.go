package scf

import (
	"math"

	"go.uber.org/zap"

	"scf/cuckoo"
)

// Filter is an ordered stack of cuckoo filters with geometrically growing
// capacity and geometrically tightening per-filter false-positive budget,
// so the aggregate false-positive rate stays within the bound given to New.
//
// Filter is single-owner and not safe for concurrent use.
type Filter struct {
	filters []*cuckoo.Filter

	initialCapacity uint64
	fpp             float64
	opts            Options

	itemCache [][]byte
	stats     *Stats
}

// New constructs a Filter with one empty cuckoo filter sized for
// initialCapacity, targeting an aggregate false positive probability of
// fpp. Use DefaultOptions() (optionally with WithXxx overrides) for opts.
func New(initialCapacity uint64, fpp float64, opts Options) (*Filter, error) {
	if initialCapacity == 0 {
		return nil, ErrInvalidCapacity
	}
	if !(fpp > 0 && fpp < 1) {
		return nil, ErrInvalidFPP
	}
	if opts.EntriesPerBucket == 0 {
		return nil, ErrInvalidEntriesPerBucket
	}
	if opts.GrowthFactor < 2 {
		return nil, ErrInvalidGrowthFactor
	}
	if !(opts.TighteningRatio > 0 && opts.TighteningRatio < 1) {
		return nil, ErrInvalidTighteningRatio
	}
	if opts.Hasher == nil {
		return nil, ErrMissingHasher
	}
	if opts.RNG == nil {
		return nil, ErrMissingRNG
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	flt := &Filter{
		initialCapacity: initialCapacity,
		fpp:             fpp,
		opts:            opts,
	}
	if err := flt.grow(); err != nil {
		return nil, err
	}
	return flt, nil
}

// filterParams computes the requested capacity and fingerprint-budget
// derived bit width for the k-th filter in the stack (0-indexed).
func (flt *Filter) filterParams(k int) (capacity, fingerprintWidth uint64) {
	capacity = flt.initialCapacity * pow(flt.opts.GrowthFactor, k)

	budget := flt.fpp * (1 - flt.opts.TighteningRatio) * powFloat(flt.opts.TighteningRatio, k)
	b := float64(flt.opts.EntriesPerBucket)
	f := math.Ceil(math.Log2(2 * b / budget))
	if f < 1 {
		f = 1
	}
	if f > 64 {
		f = 64
	}
	return capacity, uint64(f)
}

func pow(base uint64, exp int) uint64 {
	result := uint64(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

func powFloat(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// grow appends a new, empty cuckoo filter sized for the next slot in the
// stack and logs the lifecycle event.
func (flt *Filter) grow() error {
	k := len(flt.filters)
	capacity, f := flt.filterParams(k)

	next, err := cuckoo.New(f, flt.opts.EntriesPerBucket, capacity, flt.opts.MaxKicks, flt.opts.Hasher, flt.opts.RNG)
	if err != nil {
		return err
	}
	flt.filters = append(flt.filters, next)
	flt.opts.Logger.Debug("scf: appended filter",
		zap.Int("filter_index", k),
		zap.Uint64("requested_capacity", capacity),
		zap.Uint64("fingerprint_bits", f),
		zap.Uint64("bucket_count", next.BucketCount()),
	)
	if flt.stats != nil {
		flt.stats.grows.Inc()
	}
	return nil
}

// Contains reports whether item may be in the filter. False positives are
// possible; false negatives are not, for any item actually inserted.
func (flt *Filter) Contains(item []byte) bool {
	h := flt.opts.Hasher.Sum64(item)
	for _, f := range flt.filters {
		if f.Contains(h) {
			return true
		}
	}
	return false
}

// Insert stores item, growing the filter stack if the active filter cannot
// accept it. A fresh filter is guaranteed to accept a single insertion, so
// at most one grow-and-retry happens per call.
func (flt *Filter) Insert(item []byte) {
	h := flt.opts.Hasher.Sum64(item)
	active := flt.filters[len(flt.filters)-1]

	res := active.Insert(h)
	if res.IsOk() {
		flt.rememberItem(item)
		if ok, _ := res.Get(); ok && flt.stats != nil {
			flt.stats.inserts.Inc()
		}
		return
	}

	if flt.stats != nil {
		flt.stats.insertsFull.Inc()
	}
	if err := flt.grow(); err != nil {
		panic("scf: failed to grow filter stack: " + err.Error())
	}
	active = flt.filters[len(flt.filters)-1]
	res = active.Insert(h)
	if res.IsError() {
		panic(errGrowthFilterRefused)
	}
	flt.rememberItem(item)
	if flt.stats != nil {
		flt.stats.inserts.Inc()
	}
}

func (flt *Filter) rememberItem(item []byte) {
	if flt.opts.ItemCache {
		flt.itemCache = append(flt.itemCache, append([]byte(nil), item...))
	}
}

// Len returns the sum of item counts across all filters in the stack,
// which counts cross-filter duplicates as physically stored.
func (flt *Filter) Len() uint64 {
	var n uint64
	for _, f := range flt.filters {
		n += f.Len()
	}
	return n
}

// IsEmpty reports whether Len() == 0.
func (flt *Filter) IsEmpty() bool {
	return flt.Len() == 0
}

// Capacity returns the sum of nominal capacities across all filters in the
// stack. It is non-decreasing under Insert.
func (flt *Filter) Capacity() uint64 {
	var n uint64
	for _, f := range flt.filters {
		n += f.Capacity()
	}
	return n
}

// Bits returns the sum of total storage bits across all filters in the
// stack.
func (flt *Filter) Bits() uint64 {
	var n uint64
	for _, f := range flt.filters {
		n += f.Bits()
	}
	return n
}

// Filters returns the stack's filters, oldest first, newest (active) last.
// The returned slice is owned by Filter; callers must not mutate it.
func (flt *Filter) Filters() []*cuckoo.Filter {
	return flt.filters
}
