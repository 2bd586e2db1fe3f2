package devspec

import "math"

const bytesPerGB = 1024 * 1024 * 1024

// Canonical capacity tiers in GB. Never mutated.
var (
	storageTiers = [...]int{16, 32, 64, 128, 256, 512, 1024}
	memoryTiers  = [...]int{1, 2, 3, 4, 6, 8, 10, 12, 16, 32, 48, 64}
)

// smallStorageGB is the size at or below which storage is reported as is,
// rounded up, instead of snapped to a tier.
const smallStorageGB = 8

// StorageTiers returns a copy of the storage tier table.
func StorageTiers() []int {
	out := make([]int, len(storageTiers))
	copy(out, storageTiers[:])
	return out
}

// MemoryTiers returns a copy of the memory tier table.
func MemoryTiers() []int {
	out := make([]int, len(memoryTiers))
	copy(out, memoryTiers[:])
	return out
}

// BytesToGB converts a byte count to binary gigabytes.
func BytesToGB(b uint64) float64 {
	return float64(b) / bytesPerGB
}

// BucketStorage snaps a raw storage size to the marketed capacity.
// Sizes above the largest tier extrapolate to ceil(gb).
func BucketStorage(gb float64) int {
	gb = sanitize(gb)
	if gb <= smallStorageGB {
		return int(math.Ceil(gb))
	}
	if tier, ok := firstTierAtLeast(storageTiers[:], gb); ok {
		return tier
	}
	return int(math.Ceil(gb))
}

// BucketMemory snaps a raw memory size to the marketed capacity.
// Sizes above the largest tier clamp to it.
func BucketMemory(gb float64) int {
	gb = sanitize(gb)
	if gb <= 0 {
		return memoryTiers[0]
	}
	if tier, ok := firstTierAtLeast(memoryTiers[:], gb); ok {
		return tier
	}
	return memoryTiers[len(memoryTiers)-1]
}

func firstTierAtLeast(tiers []int, gb float64) (int, bool) {
	for _, tier := range tiers {
		if gb <= float64(tier) {
			return tier, true
		}
	}
	return 0, false
}

// maxReading caps raw readings so that rounding always fits an int.
const maxReading = math.MaxInt32

// sanitize maps NaN and negative readings to zero, i.e. "unavailable", and
// clamps anything above maxReading, +Inf included.
func sanitize(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > maxReading:
		return maxReading
	}
	return v
}
