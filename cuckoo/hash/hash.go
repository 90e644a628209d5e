// Package hash provides concrete 64-bit hashers for cuckoo filters.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// XXHash64 wraps cespare/xxhash/v2. It is the default hasher: the same
// library the filter's eviction-chain rehashing has always used.
type XXHash64 struct{}

// NewXXHash64 returns an unseeded XXHash64 hasher.
func NewXXHash64() XXHash64 {
	return XXHash64{}
}

// Sum64 implements the filter's Hasher contract.
func (XXHash64) Sum64(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// XXHash64Seeded wraps cespare/xxhash/v2 with a fixed seed mixed into every
// digest, for callers that need deterministic hashing across processes
// without constructing their own hasher.
type XXHash64Seeded struct {
	seed uint64
}

// NewXXHash64Seeded returns a hasher that mixes seed into every Sum64 call.
func NewXXHash64Seeded(seed uint64) XXHash64Seeded {
	return XXHash64Seeded{seed: seed}
}

// Sum64 implements the filter's Hasher contract.
func (h XXHash64Seeded) Sum64(b []byte) uint64 {
	d := xxhash.New()
	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], h.seed)
	_, _ = d.Write(seedBuf[:])
	_, _ = d.Write(b)
	return d.Sum64()
}

// XXH3 wraps zeebo/xxh3, an alternative hasher for callers that already
// standardize on the xxh3 family elsewhere in their stack.
type XXH3 struct{}

// NewXXH3 returns an XXH3 hasher.
func NewXXH3() XXH3 {
	return XXH3{}
}

// Sum64 implements the filter's Hasher contract.
func (XXH3) Sum64(b []byte) uint64 {
	return xxh3.Hash(b)
}
