package devspec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gb(v float64) uint64 {
	return uint64(v * bytesPerGB)
}

func TestBucketStorage(t *testing.T) {
	tests := []struct {
		name string
		gb   float64
		want int
	}{
		{"zero", 0, 0},
		{"tiny rounds up", 3.2, 4},
		{"exactly eight", 8, 8},
		{"just above eight", 8.01, 16},
		{"exact tier", 64, 64},
		{"between tiers", 119.5, 128},
		{"just above tier", 128.001, 256},
		{"largest tier", 1024, 1024},
		{"extrapolates above table", 1500, 1500},
		{"extrapolation rounds up", 2000.2, 2001},
		{"negative is unavailable", -5, 0},
		{"NaN is unavailable", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketStorage(tt.gb))
		})
	}
}

func TestBucketMemory(t *testing.T) {
	tests := []struct {
		name string
		gb   float64
		want int
	}{
		{"zero", 0, 1},
		{"negative", -1, 1},
		{"fraction", 0.4, 1},
		{"between tiers", 7.2, 8},
		{"exact tier", 12, 12},
		{"gap between 16 and 32", 17, 32},
		{"largest tier", 64, 64},
		{"clamps above table", 70, 64},
		{"clamps far above table", 512, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketMemory(tt.gb))
		})
	}
}

func TestBucketStorage_NeverBelowRawWithinTable(t *testing.T) {
	for v := 0.0; v <= 1024; v += 0.37 {
		assert.GreaterOrEqual(t, float64(BucketStorage(v)), v, "raw %.2f", v)
	}
}

func TestBucketMemory_NeverBelowRawWithinTable(t *testing.T) {
	for v := 0.0; v <= 64; v += 0.13 {
		assert.GreaterOrEqual(t, float64(BucketMemory(v)), v, "raw %.2f", v)
	}
}

func TestBuckets_Monotonic(t *testing.T) {
	prevStorage, prevMemory := BucketStorage(0), BucketMemory(0)
	for v := 0.0; v <= 3000; v += 0.25 {
		s, m := BucketStorage(v), BucketMemory(v)
		assert.GreaterOrEqual(t, s, prevStorage, "storage at %.2f", v)
		assert.GreaterOrEqual(t, m, prevMemory, "memory at %.2f", v)
		prevStorage, prevMemory = s, m
	}
}

func TestBuckets_HugeReadingsClamp(t *testing.T) {
	for _, v := range []float64{1e10, 1e20, math.MaxFloat64, math.Inf(1)} {
		assert.Equal(t, math.MaxInt32, BucketStorage(v), "storage %g", v)
		assert.Equal(t, 64, BucketMemory(v), "memory %g", v)
	}
	assert.GreaterOrEqual(t, BucketStorage(1e20), BucketStorage(1e6))
	assert.Equal(t, 0, BucketStorage(math.Inf(-1)))
	assert.Equal(t, 1, BucketMemory(math.Inf(-1)))
}

func TestTiers_ReturnCopies(t *testing.T) {
	s := StorageTiers()
	s[0] = 999
	assert.Equal(t, 16, StorageTiers()[0])

	m := MemoryTiers()
	m[len(m)-1] = 1
	assert.Equal(t, 64, MemoryTiers()[len(m)-1])
}

func TestBytesToGB(t *testing.T) {
	assert.Equal(t, 0.0, BytesToGB(0))
	assert.Equal(t, 1.0, BytesToGB(1<<30))
	assert.InDelta(t, 119.5, BytesToGB(gb(119.5)), 1e-9)
}
