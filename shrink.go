package scf

import (
	"errors"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ErrShrinkNeedsItems is returned by ShrinkToFit when the filter holds
// items but was given no item stream and has no item cache to fall back on
// (see Options.WithItemCache).
var ErrShrinkNeedsItems = errors.New("scf: shrink_to_fit needs either an item stream or Options.ItemCache")

// ShrinkToFit rebuilds the stack, starting from one filter sized for
// len(items), and re-inserts every item in items. If that filter refuses an
// insert, the rebuilt stack grows exactly as Insert does, so the result is
// not always a single filter. If items is omitted and the filter was built
// with Options.WithItemCache(true), the filter's own record of every item
// passed to Insert is used instead.
//
// The cuckoo filter's cells hold only fingerprints, not original items, so
// an item stream (direct or cached) is the only way to rebuild: without
// one, membership after a shrink could not be reconstructed for any
// already-occupied cell. On an empty filter, ShrinkToFit is a no-op.
func (flt *Filter) ShrinkToFit(items ...[]byte) error {
	if len(items) == 0 {
		items = flt.itemCache
	}
	if flt.IsEmpty() {
		return nil
	}
	if len(items) == 0 {
		return ErrShrinkNeedsItems
	}

	before := flt.Len()
	beforeCapacity := flt.Capacity()

	rebuilt := &Filter{
		initialCapacity: uint64(len(items)),
		fpp:             flt.fpp,
		opts:            flt.opts,
	}
	if err := rebuilt.grow(); err != nil {
		return err
	}
	lo.ForEach(items, func(item []byte, _ int) {
		rebuilt.Insert(item)
	})

	flt.filters = rebuilt.filters
	flt.initialCapacity = rebuilt.initialCapacity
	if flt.opts.ItemCache {
		flt.itemCache = rebuilt.itemCache
	}

	flt.opts.Logger.Info("scf: shrink_to_fit",
		zap.Uint64("items_before", before),
		zap.Uint64("items_after", flt.Len()),
		zap.Uint64("capacity_before", beforeCapacity),
		zap.Uint64("capacity_after", flt.Capacity()),
	)
	if flt.stats != nil {
		flt.stats.shrinks.Inc()
	}
	return nil
}
