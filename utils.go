package densemap

import (
	"math"
	"math/bits"
)

// Returns the next power of 2 for the given value `v`.
func NextPowerOf2(v uint64) uint64 {
	return uint64(1) << min(bits.Len64(v-1), 63)
}

// Estimates the largest capacity (number of key/value slots) whose whole
// table footprint fits into the given memory size in bytes.
func CapacityFromSize[K comparable, V any](size uintptr, loadFactor float64) int {
	if !validLoadFactor(loadFactor) {
		return 0
	}

	lf := percent(loadFactor)
	fits := func(capacity uint64) bool {
		n, ok := newLayout[K, V](capacity, lf).bytes()
		return ok && n <= uint64(size)
	}

	if !fits(1) {
		return 0
	}

	// The footprint only grows with capacity, so search for the boundary.
	lo, hi := uint64(1), uint64(2)
	for hi <= math.MaxInt/2 && fits(hi) {
		lo, hi = hi, hi*2
	}

	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}

	return int(lo)
}
