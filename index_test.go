package densemap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProbeIndex(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint64
		stride   uint64
	}{
		{"stride 1", 8, 1},
		{"stride 2", 100, 2},
		{"stride 4", 20000, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout[int, int](tt.capacity, 50)
			require.Equal(t, tt.stride, l.indexStride)

			p := newProbeIndex(make([]byte, l.indexSize()), l)
			require.Equal(t, l.indexCapacity, p.len())

			for b := range p.len() {
				require.Equal(t, p.empty(), p.load(b))
				require.Equal(t, bucketEmpty, p.state(p.load(b)))
			}

			last := p.len() - 1

			p.store(0, 0)
			p.store(1, tt.capacity-1)
			p.store(2, p.deleted())
			p.store(last, 7)

			require.Equal(t, uint64(0), p.load(0))
			require.Equal(t, tt.capacity-1, p.load(1))
			require.Equal(t, p.deleted(), p.load(2))
			require.Equal(t, uint64(7), p.load(last))

			// Neighbours are untouched.
			require.Equal(t, p.empty(), p.load(3))
			require.Equal(t, p.empty(), p.load(last-1))

			require.Equal(t, bucketOccupied, p.state(p.load(0)))
			require.Equal(t, bucketOccupied, p.state(p.load(1)))
			require.Equal(t, bucketDeleted, p.state(p.load(2)))

			p.clear()
			for b := range p.len() {
				require.Equal(t, bucketEmpty, p.state(p.load(b)))
			}
		})
	}
}

func TestProbeIndex_Stride8(t *testing.T) {
	l := layout{
		capacity:      4,
		indexCapacity: 8,
		indexStride:   8,
		indexMask:     indexMaskFor(8),
	}

	p := newProbeIndex(make([]byte, l.indexSize()), l)
	require.Equal(t, uint64(1<<64-1), p.empty())
	require.Equal(t, uint64(1<<64-2), p.deleted())

	p.store(3, 1<<40)
	require.Equal(t, uint64(1<<40), p.load(3))
	require.Equal(t, bucketOccupied, p.state(p.load(3)))

	p.store(4, p.deleted())
	require.Equal(t, bucketDeleted, p.state(p.load(4)))
	require.Equal(t, bucketEmpty, p.state(p.load(5)))
}
