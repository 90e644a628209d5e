// Package rand provides concrete uniform 64-bit random sources for cuckoo
// filter eviction.
package rand

import (
	"math/rand"

	"github.com/detailyang/fastrand-go"
)

// FastRand wraps detailyang/fastrand-go, the library the filter's eviction
// coin-flip and kicked-cell selection have always used. It is the default
// RNG. It carries no seed: fastrand-go exposes none, so determinism-minded
// callers should reach for MathRand instead.
type FastRand struct{}

// NewFastRand returns a FastRand source.
func NewFastRand() FastRand {
	return FastRand{}
}

// Uint64 implements the filter's RNG contract.
func (FastRand) Uint64() uint64 {
	hi := uint64(fastrand.FastRand())
	lo := uint64(fastrand.FastRand())
	return hi<<32 | lo
}

// MathRand wraps a stdlib *rand.Rand. Unlike FastRand it can be constructed
// with an explicit seed, which is what makes reproducible eviction sequences
// possible.
type MathRand struct {
	r *rand.Rand
}

// NewMathRand wraps an existing *rand.Rand.
func NewMathRand(r *rand.Rand) MathRand {
	return MathRand{r: r}
}

// NewMathRandSeeded returns a MathRand seeded deterministically.
func NewMathRandSeeded(seed int64) MathRand {
	return MathRand{r: rand.New(rand.NewSource(seed))}
}

// Uint64 implements the filter's RNG contract.
func (m MathRand) Uint64() uint64 {
	return m.r.Uint64()
}
