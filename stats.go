package densemap

import (
	"fmt"

	"gopkg.in/gholt/brimtext.v1"
)

type Stats struct {
	Count         int
	Capacity      int
	IndexCapacity int
	Tombstones    int

	// IndexStride is the width in bytes of one index entry.
	IndexStride int

	LoadFactor float64
	GrowFactor float64

	// Footprint is the number of bytes taken by the table header, the index
	// and the dense key and value slots, in use or not.
	Footprint uintptr

	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}

func (s *Stats) String() string {
	return brimtext.Align([][]string{
		{"Count", fmt.Sprintf("%d", s.Count)},
		{"Capacity", fmt.Sprintf("%d", s.Capacity)},
		{"IndexCapacity", fmt.Sprintf("%d", s.IndexCapacity)},
		{"IndexStride", fmt.Sprintf("%d", s.IndexStride)},
		{"Tombstones", fmt.Sprintf("%d %.1f%%", s.Tombstones, 100*s.TombstonesCapacityRatio)},
		{"LoadFactor", fmt.Sprintf("%.2f", s.LoadFactor)},
		{"GrowFactor", fmt.Sprintf("%.2f", s.GrowFactor)},
		{"Footprint", fmt.Sprintf("%d bytes", s.Footprint)},
	}, nil)
}
