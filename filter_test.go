package scf

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cuckoorand "scf/cuckoo/rand"
)

func itemBytes(i uint64) []byte {
	return []byte(fmt.Sprintf("item-%d", i))
}

func TestScenarioBasicContainsAndInsert(t *testing.T) {
	f, err := New(100, 0.001, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, f.Contains([]byte("foo")))
	f.Insert([]byte("foo"))
	assert.True(t, f.Contains([]byte("foo")))
	assert.Equal(t, uint64(128), f.Capacity())
}

func TestScenarioShrinkToFit(t *testing.T) {
	f, err := New(1000, 0.001, DefaultOptions())
	require.NoError(t, err)

	for i := uint64(0); i < 100; i++ {
		f.Insert(itemBytes(i))
	}
	assert.Equal(t, uint64(1024), f.Capacity())
	assert.Equal(t, uint64(14336), f.Bits())

	items := lo.Map(lo.Range(100), func(i int, _ int) []byte {
		return itemBytes(uint64(i))
	})
	require.NoError(t, f.ShrinkToFit(items...))

	for i := uint64(0); i < 100; i++ {
		assert.True(t, f.Contains(itemBytes(i)))
	}
	assert.Equal(t, uint64(128), f.Capacity())
	assert.Equal(t, uint64(1792), f.Bits())
}

func TestShrinkToFitOnEmptyFilterIsNoop(t *testing.T) {
	f, err := New(100, 0.001, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, f.ShrinkToFit())
	assert.Equal(t, uint64(128), f.Capacity())
}

func TestShrinkToFitWithoutItemsOrCacheErrors(t *testing.T) {
	f, err := New(100, 0.001, DefaultOptions())
	require.NoError(t, err)
	f.Insert([]byte("foo"))
	assert.ErrorIs(t, f.ShrinkToFit(), ErrShrinkNeedsItems)
}

func TestShrinkToFitUsesItemCacheWhenEnabled(t *testing.T) {
	opts := DefaultOptions().WithItemCache(true)
	f, err := New(100, 0.001, opts)
	require.NoError(t, err)

	for i := uint64(0); i < 50; i++ {
		f.Insert(itemBytes(i))
	}
	require.NoError(t, f.ShrinkToFit())
	for i := uint64(0); i < 50; i++ {
		assert.True(t, f.Contains(itemBytes(i)))
	}
}

func TestCapacityIsMonotoneUnderInsert(t *testing.T) {
	f, err := New(16, 0.01, DefaultOptions())
	require.NoError(t, err)

	prev := f.Capacity()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		f.Insert([]byte(fmt.Sprintf("%d", rng.Uint64())))
		cur := f.Capacity()
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestLenCountsCrossFilterDuplicates(t *testing.T) {
	f, err := New(4, 0.2, DefaultOptions())
	require.NoError(t, err)

	f.Insert([]byte("dup"))
	before := f.Len()
	// Drive growth, then insert the same item again: it may land in the
	// new active filter even though an older filter already holds it.
	for i := 0; i < 200; i++ {
		f.Insert([]byte(fmt.Sprintf("filler-%d", i)))
	}
	f.Insert([]byte("dup"))
	assert.GreaterOrEqual(t, f.Len(), before+1)
	assert.True(t, f.Contains([]byte("dup")))
}

func TestDeterminismAcrossIdenticalSeeds(t *testing.T) {
	buildAndInsert := func() *Filter {
		opts := DefaultOptions().
			WithHasher(hasherForTest{}).
			WithRNG(cuckoorand.NewMathRandSeeded(99))
		f, err := New(1000, 0.01, opts)
		require.NoError(t, err)
		for i := uint64(0); i < 500; i++ {
			f.Insert(itemBytes(i))
		}
		return f
	}

	a := buildAndInsert()
	b := buildAndInsert()

	require.Equal(t, len(a.filters), len(b.filters))
	for i := range a.filters {
		af, bf := a.filters[i], b.filters[i]
		require.Equal(t, af.BucketCount(), bf.BucketCount())
		for cell := uint64(0); cell < af.Capacity(); cell++ {
			assert.Equal(t, af.Cell(cell), bf.Cell(cell))
		}
	}
}

// hasherForTest is a small deterministic hasher independent of any
// third-party library's exact bit pattern, for tests that only need
// reproducibility rather than any particular distribution.
type hasherForTest struct{}

func (hasherForTest) Sum64(b []byte) uint64 {
	const prime = 1099511628211
	sum := uint64(14695981039346656037)
	for _, by := range b {
		sum ^= uint64(by)
		sum *= prime
	}
	return sum
}

func TestConstructionValidation(t *testing.T) {
	_, err := New(0, 0.01, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New(10, 0, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFPP)

	_, err = New(10, 1, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFPP)

	_, err = New(10, 0.01, DefaultOptions().WithEntriesPerBucket(0))
	assert.ErrorIs(t, err, ErrInvalidEntriesPerBucket)

	_, err = New(10, 0.01, DefaultOptions().WithGrowthFactor(1))
	assert.ErrorIs(t, err, ErrInvalidGrowthFactor)

	_, err = New(10, 0.01, DefaultOptions().WithTighteningRatio(0))
	assert.ErrorIs(t, err, ErrInvalidTighteningRatio)

	_, err = New(10, 0.01, DefaultOptions().WithTighteningRatio(1))
	assert.ErrorIs(t, err, ErrInvalidTighteningRatio)

	_, err = New(10, 0.01, DefaultOptions().WithHasher(nil))
	assert.ErrorIs(t, err, ErrMissingHasher)

	_, err = New(10, 0.01, DefaultOptions().WithRNG(nil))
	assert.ErrorIs(t, err, ErrMissingRNG)

	_, err = New(10, 0.01, Options{EntriesPerBucket: 4, GrowthFactor: 2, TighteningRatio: 0.5, MaxKicks: 512})
	assert.ErrorIs(t, err, ErrMissingHasher)
}
