package densemap

import (
	"math"
	"math/bits"
	"unsafe"
)

const (
	defaultLoadFactor = 0.75
	defaultGrowFactor = 1.5

	minLoadFactor = 0.01
	maxLoadFactor = 1.0
	minGrowFactor = 0.10
	maxGrowFactor = 2.50
)

// layout is the sizing of a table for one capacity and load factor.
type layout struct {
	capacity      uint64
	indexCapacity uint64
	indexStride   uint64
	indexMask     uint64

	headerSize  uintptr
	keyStride   uintptr
	valueStride uintptr
}

func newLayout[K comparable, V any](capacity uint64, loadFactor uint8) layout {
	var (
		k K
		v V
	)

	indexCapacity := indexCapacityFor(capacity, loadFactor)
	stride := indexStrideFor(indexCapacity)

	return layout{
		capacity:      capacity,
		indexCapacity: indexCapacity,
		indexStride:   stride,
		indexMask:     indexMaskFor(stride),
		headerSize:    unsafe.Sizeof(table[K, V]{}),
		keyStride:     unsafe.Sizeof(k),
		valueStride:   unsafe.Sizeof(v),
	}
}

// indexSize is the number of bytes the probe index occupies.
func (l layout) indexSize() uint64 {
	return l.indexCapacity * l.indexStride
}

// size is the whole footprint: header, index, keys and values.
func (l layout) size() uintptr {
	return l.headerSize +
		uintptr(l.indexSize()) +
		uintptr(l.capacity)*(l.keyStride+l.valueStride)
}

// bytes is size in uint64 arithmetic. It reports false when the layout has
// no index or when the footprint does not fit in an int.
func (l layout) bytes() (uint64, bool) {
	if l.indexCapacity == 0 {
		return 0, false
	}

	hi, index := bits.Mul64(l.indexCapacity, l.indexStride)
	if hi != 0 {
		return 0, false
	}

	hi, entries := bits.Mul64(l.capacity, uint64(l.keyStride)+uint64(l.valueStride))
	if hi != 0 {
		return 0, false
	}

	total, carry := bits.Add64(index, entries, 0)
	if carry != 0 {
		return 0, false
	}

	total, carry = bits.Add64(total, uint64(l.headerSize), 0)
	if carry != 0 || total > math.MaxInt {
		return 0, false
	}

	return total, true
}

// ceilStrict rounds up to the next integer, and also moves whole numbers one
// up. Sizes derived from it are always strictly greater than x. It saturates
// at math.MaxUint64.
func ceilStrict(x float64) uint64 {
	if x >= 1<<64 {
		return math.MaxUint64
	}

	return uint64(x) + 1
}

// indexCapacityFor returns 0 when no power of two in uint64 is large enough.
func indexCapacityFor(capacity uint64, loadFactor uint8) uint64 {
	factor := 100.0 / float64(loadFactor)

	n := ceilStrict(factor * float64(capacity))
	if n > 1<<63 {
		return 0
	}

	return NextPowerOf2(n)
}

// Index entries are as narrow as the index allows. The top two values of each
// width are reserved for the empty and deleted sentinels.
func indexStrideFor(indexCapacity uint64) uint64 {
	switch {
	case indexCapacity < 1<<7:
		return 1
	case indexCapacity < 1<<15:
		return 2
	case indexCapacity < 1<<31:
		return 4
	default:
		return 8
	}
}

func indexMaskFor(stride uint64) uint64 {
	return math.MaxUint64 >> (64 - 8*stride)
}

func growCapacity(capacity uint64, growFactor uint8) uint64 {
	factor := float64(growFactor)/100.0 + 1.0
	return ceilStrict(factor * float64(capacity))
}

// percent converts a fractional factor to the stored whole percent.
func percent(f float64) uint8 {
	return uint8(math.Round(f * 100))
}

func validLoadFactor(f float64) bool {
	return f >= minLoadFactor && f <= maxLoadFactor
}

func validGrowFactor(f float64) bool {
	return f >= minGrowFactor && f <= maxGrowFactor
}
