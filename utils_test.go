package densemap

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNextPowerOf2(t *testing.T) {
	tests := []struct {
		input uint64
		want  uint64
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{9, 16},
		{128, 128},
		{129, 256},
		{1<<40 + 1, 1 << 41},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NextPowerOf2(tt.input), "NextPowerOf2(%d)", tt.input)
	}
}

func TestCapacityFromSize(t *testing.T) {
	t.Run("int,int", func(t *testing.T) {
		header := newLayout[int, int](1, 75).headerSize

		tests := []struct {
			name string
			size uintptr
		}{
			{"header only", header},
			{"one entry", newLayout[int, int](1, 75).size()},
			{"1KB", 1024},
			{"1MB", 1024 * 1024},
			{"1GB", 1024 * 1024 * 1024},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := CapacityFromSize[int, int](tt.size, 0.75)
				if got == 0 {
					require.Greater(t, newLayout[int, int](1, 75).size(), tt.size)
					return
				}

				require.LessOrEqual(t, newLayout[int, int](uint64(got), 75).size(), tt.size)
				require.Greater(t, newLayout[int, int](uint64(got)+1, 75).size(), tt.size)
			})
		}
	})

	t.Run("zero", func(t *testing.T) {
		require.Zero(t, CapacityFromSize[int, int](0, 0.75))
	})

	t.Run("invalid load factor", func(t *testing.T) {
		require.Zero(t, CapacityFromSize[int, int](1<<20, 0))
	})

	t.Run("whole address space", func(t *testing.T) {
		capacity := CapacityFromSize[int, int](^uintptr(0), 1.0)
		require.Positive(t, capacity)

		n, ok := newLayout[int, int](uint64(capacity), 100).bytes()
		require.True(t, ok)
		require.LessOrEqual(t, n, uint64(math.MaxInt))

		_, ok = newLayout[int, int](uint64(capacity)+1, 100).bytes()
		require.False(t, ok)
	})

	t.Run("usage with New", func(t *testing.T) {
		capacity := CapacityFromSize[string, int](64*1024, 0.5)
		require.Positive(t, capacity)

		m, err := New(capacity, WithLoadFactor[string, int](0.5))
		require.NoError(t, err)
		require.LessOrEqual(t, m.Stats().Footprint, uintptr(64*1024))
	})
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name          string
		capacity      uint64
		loadFactor    uint8
		indexCapacity uint64
		indexStride   uint64
		indexMask     uint64
	}{
		{"full load", 8, 100, 16, 1, 0xFF},
		{"default load", 8, 75, 16, 1, 0xFF},
		{"half load", 8, 50, 32, 1, 0xFF},
		{"last one byte index", 63, 100, 64, 1, 0xFF},
		{"two byte index", 64, 100, 128, 2, 0xFFFF},
		{"four byte index", 20000, 50, 65536, 4, 0xFFFFFFFF},
		{"sparse index", 3, 1, 512, 2, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout[string, int](tt.capacity, tt.loadFactor)

			require.Equal(t, tt.capacity, l.capacity)
			require.Equal(t, tt.indexCapacity, l.indexCapacity)
			require.Equal(t, tt.indexStride, l.indexStride)
			require.Equal(t, tt.indexMask, l.indexMask)
			require.Equal(t, tt.indexCapacity*tt.indexStride, l.indexSize())

			want := unsafe.Sizeof(table[string, int]{}) +
				uintptr(tt.indexCapacity*tt.indexStride) +
				uintptr(tt.capacity)*(unsafe.Sizeof("")+unsafe.Sizeof(0))
			require.Equal(t, want, l.size())
		})
	}
}

func TestLayout_Overflow(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint64
	}{
		{"index wraps", 1 << 60},
		{"index above 1<<63", math.MaxInt},
		{"saturated", math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := newLayout[int, int](tt.capacity, 75).bytes()
			require.False(t, ok)

			_, ok = newLayout[struct{}, struct{}](tt.capacity, 100).bytes()
			require.False(t, ok)
		})
	}

	n, ok := newLayout[int, int](8, 100).bytes()
	require.True(t, ok)
	require.Equal(t, uint64(newLayout[int, int](8, 100).size()), n)

	require.Equal(t, uint64(math.MaxUint64), growCapacity(math.MaxUint64/2, 250))
	require.Zero(t, indexCapacityFor(1<<62, 50))
}

func TestIndexStrideFor(t *testing.T) {
	tests := []struct {
		indexCapacity uint64
		stride        uint64
		mask          uint64
	}{
		{1, 1, 0xFF},
		{127, 1, 0xFF},
		{128, 2, 0xFFFF},
		{32767, 2, 0xFFFF},
		{32768, 4, 0xFFFFFFFF},
		{1<<31 - 1, 4, 0xFFFFFFFF},
		{1 << 31, 8, math.MaxUint64},
	}

	for _, tt := range tests {
		stride := indexStrideFor(tt.indexCapacity)
		require.Equal(t, tt.stride, stride, "indexStrideFor(%d)", tt.indexCapacity)
		require.Equal(t, tt.mask, indexMaskFor(stride))
	}
}

func TestGrowCapacity(t *testing.T) {
	tests := []struct {
		capacity   uint64
		growFactor uint8
		want       uint64
	}{
		{8, 150, 21},
		{8, 200, 25},
		{8, 100, 17},
		{8, 10, 9},
		{1, 10, 2},
		{1000, 50, 1501},
	}

	for _, tt := range tests {
		got := growCapacity(tt.capacity, tt.growFactor)
		require.Equal(t, tt.want, got, "growCapacity(%d, %d)", tt.capacity, tt.growFactor)
		require.Greater(t, got, tt.capacity)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		input float64
		want  uint8
	}{
		{0.01, 1},
		{0.1, 10},
		{0.29, 29},
		{0.5, 50},
		{0.75, 75},
		{1.0, 100},
		{1.5, 150},
		{2.5, 250},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, percent(tt.input), "percent(%v)", tt.input)
	}
}
