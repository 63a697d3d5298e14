package densemap

import "errors"

var (
	ErrInvalidCapacity   = errors.New("densemap: capacity must be at least 1")
	ErrInvalidLoadFactor = errors.New("densemap: load factor must be within [0.01, 1.0]")
	ErrInvalidGrowFactor = errors.New("densemap: grow factor must be within [0.10, 2.50]")

	// ErrAllocFailed is returned when the allocator could not provide a
	// block. The table keeps its previous state.
	ErrAllocFailed = errors.New("densemap: allocation failed")

	// ErrFreed is returned by mutating calls on a table after Free.
	ErrFreed = errors.New("densemap: use of freed table")
)
