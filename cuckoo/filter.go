// Package cuckoo implements a single fixed-capacity cuckoo filter over a
// bit-packed cell store: two-candidate bucket addressing from one hash,
// fingerprint-XOR complementary bucket derivation, and bounded
// random-eviction insertion.
package cuckoo

import (
	"encoding/binary"

	"github.com/samber/mo"

	"scf/bits"
	"scf/internal/fastmath"
)

// Hasher produces a deterministic 64-bit digest from an opaque byte slice.
// Implementations must be deterministic for a given filter instance; see
// package cuckoo/hash for concrete hashers.
type Hasher interface {
	Sum64([]byte) uint64
}

// RNG produces uniform 64-bit words. It is consulted only during the
// eviction path of Insert. See package cuckoo/rand for concrete sources.
type RNG interface {
	Uint64() uint64
}

// altIndexDomainTag distinguishes the alt-index rehash of a fingerprint from
// any other use of the same Hasher, so the two can never collide by
// construction.
const altIndexDomainTag = 0xA5

// Filter is one fixed-capacity cuckoo filter: n buckets of b entries each,
// every entry an f-bit fingerprint.
type Filter struct {
	f        uint64 // fingerprint width in bits
	b        uint64 // entries per bucket
	n        uint64 // bucket count, a power of two
	maxKicks uint32
	hasher   Hasher
	rng      RNG
	store    *bits.Bits
	count    uint64
}

// New constructs a filter with nominal capacity >= capacity, using
// fingerprint width f bits and b entries per bucket. maxKicks bounds the
// length of the eviction chain attempted by Insert before it gives up.
func New(f, b, capacity uint64, maxKicks uint32, hasher Hasher, rng RNG) (*Filter, error) {
	if f == 0 || f > 64 {
		return nil, ErrInvalidFingerprintWidth
	}
	if b == 0 {
		return nil, ErrInvalidEntriesPerBucket
	}
	if capacity == 0 {
		return nil, ErrInvalidCapacity
	}

	n := fastmath.NextPowerOf2(fastmath.CeilDiv(capacity, b))
	if n == 0 {
		n = 1
	}
	store, err := bits.New(n*b, f)
	if err != nil {
		return nil, err
	}
	return &Filter{
		f:        f,
		b:        b,
		n:        n,
		maxKicks: maxKicks,
		hasher:   hasher,
		rng:      rng,
		store:    store,
	}, nil
}

// Len returns the number of non-empty cells.
func (flt *Filter) Len() uint64 {
	return flt.count
}

// Capacity returns the nominal capacity, n*b.
func (flt *Filter) Capacity() uint64 {
	return flt.n * flt.b
}

// Bits returns the total storage bits, n*b*f.
func (flt *Filter) Bits() uint64 {
	return flt.n * flt.b * flt.f
}

// BucketCount returns n, the number of buckets. Always a power of two.
func (flt *Filter) BucketCount() uint64 {
	return flt.n
}

// Cell returns the raw fingerprint stored at cell index i (0 for empty),
// for introspection and determinism testing. i must be < Capacity().
func (flt *Filter) Cell(i uint64) uint64 {
	return flt.store.Get(i)
}

func widthMask(width uint64) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// indexAndFingerprint derives the home bucket index and fingerprint from an
// item hash. The low log2(n) bits of h address the bucket; the high f bits
// supply the fingerprint. A forbidden all-zero fingerprint is remapped to 1.
func (flt *Filter) indexAndFingerprint(h uint64) (uint64, uint64) {
	fp := (h >> (64 - flt.f)) & widthMask(flt.f)
	if fp == 0 {
		fp = 1
	}
	i := h & (flt.n - 1)
	return i, fp
}

// altIndex returns the complementary bucket for fingerprint fp given one of
// its candidate buckets i. It is its own inverse: altIndex(altIndex(i, fp), fp) == i.
func (flt *Filter) altIndex(i, fp uint64) uint64 {
	var buf [9]byte
	buf[0] = altIndexDomainTag
	binary.LittleEndian.PutUint64(buf[1:], fp)
	h := flt.hasher.Sum64(buf[:])
	return (i ^ h) & (flt.n - 1)
}

func (flt *Filter) cell(bucket, slot uint64) uint64 {
	return bucket*flt.b + slot
}

func (flt *Filter) bucketContains(bucket, fp uint64) bool {
	for slot := uint64(0); slot < flt.b; slot++ {
		if flt.store.Get(flt.cell(bucket, slot)) == fp {
			return true
		}
	}
	return false
}

func (flt *Filter) bucketInsert(bucket, fp uint64) bool {
	for slot := uint64(0); slot < flt.b; slot++ {
		c := flt.cell(bucket, slot)
		if flt.store.Get(c) == 0 {
			flt.store.Set(c, fp)
			return true
		}
	}
	return false
}

// Contains reports whether h's fingerprint is present in either of its
// candidate buckets. It never mutates the filter.
func (flt *Filter) Contains(h uint64) bool {
	i1, fp := flt.indexAndFingerprint(h)
	if flt.bucketContains(i1, fp) {
		return true
	}
	i2 := flt.altIndex(i1, fp)
	return flt.bucketContains(i2, fp)
}

// Insert stores h's fingerprint. It returns Ok(true) if newly stored,
// Ok(false) if a matching fingerprint was already present in a candidate
// bucket, or Err(ErrFull) if max kicks evictions failed to seat the
// fingerprint. On Err, the filter's fingerprint multiset and item count are
// unchanged from before the call.
func (flt *Filter) Insert(h uint64) mo.Result[bool] {
	i1, fp := flt.indexAndFingerprint(h)
	if flt.bucketContains(i1, fp) {
		return mo.Ok(false)
	}
	i2 := flt.altIndex(i1, fp)
	if flt.bucketContains(i2, fp) {
		return mo.Ok(false)
	}
	if flt.bucketInsert(i1, fp) {
		flt.count++
		return mo.Ok(true)
	}
	if flt.bucketInsert(i2, fp) {
		flt.count++
		return mo.Ok(true)
	}

	start := i1
	if flt.rng.Uint64()&1 == 1 {
		start = i2
	}
	if flt.evictAndInsert(start, fp) {
		flt.count++
		return mo.Ok(true)
	}
	return mo.Err[bool](ErrFull)
}

// displacement records one cell mutation made during an eviction chain, so
// a failed chain can be unwound cell-by-cell back to its starting state.
type displacement struct {
	cell uint64
	prev uint64
}

// evictAndInsert repeatedly evicts a random cell in bucket i, reseating the
// evictee at its alternate bucket, until the chain seats successfully or
// maxKicks is exhausted. On exhaustion every mutated cell is restored to its
// pre-chain value, in reverse order, leaving the filter exactly as it was.
func (flt *Filter) evictAndInsert(i, newFp uint64) bool {
	var history []displacement
	cur := newFp
	for k := uint32(0); k < flt.maxKicks; k++ {
		slot := flt.rng.Uint64() % flt.b
		c := flt.cell(i, slot)
		prev := flt.store.Get(c)
		flt.store.Set(c, cur)
		history = append(history, displacement{cell: c, prev: prev})

		cur = prev
		i = flt.altIndex(i, cur)
		if flt.bucketInsert(i, cur) {
			return true
		}
	}

	for k := len(history) - 1; k >= 0; k-- {
		flt.store.Set(history[k].cell, history[k].prev)
	}
	return false
}
