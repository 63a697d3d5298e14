package densemap

// Allocator provides the memory a table keeps its probe index in.
//
// A single operation covers every request; which one is meant is inferred from
// the arguments:
//
//   - size > 0, memory == nil: allocate a new block of size bytes.
//   - size > 0, memory != nil: reallocate memory to size bytes, keeping the
//     common prefix.
//   - size == 0, memory != nil: release memory. The result is always nil.
//
// Allocate and reallocate return nil on failure. Any other combination of
// arguments is invalid and yields nil.
type Allocator interface {
	Alloc(size int, memory []byte) []byte
}

// AllocatorFunc adapts an ordinary function to the Allocator interface.
type AllocatorFunc func(size int, memory []byte) []byte

func (f AllocatorFunc) Alloc(size int, memory []byte) []byte {
	return f(size, memory)
}

type allocMode uint8

const (
	allocModeInvalid allocMode = iota
	allocModeAllocate
	allocModeReallocate
	allocModeDeallocate
)

func modeOf(size int, memory []byte) allocMode {
	switch {
	case size > 0 && memory == nil:
		return allocModeAllocate
	case size > 0:
		return allocModeReallocate
	case size == 0 && memory != nil:
		return allocModeDeallocate
	default:
		return allocModeInvalid
	}
}

type systemAllocator struct{}

// SystemAllocator hands out memory from the Go heap. Released blocks are left
// to the garbage collector.
var SystemAllocator Allocator = systemAllocator{}

func (systemAllocator) Alloc(size int, memory []byte) []byte {
	switch modeOf(size, memory) {
	case allocModeAllocate:
		return make([]byte, size)
	case allocModeReallocate:
		b := make([]byte, size)
		copy(b, memory)

		return b
	default:
		return nil
	}
}

// LimitAllocator wraps a parent allocator with a byte budget. Requests that
// would push the bytes in use past the limit fail with nil. It also keeps
// running totals, which makes it handy for spotting leaked blocks.
type LimitAllocator struct {
	parent Allocator
	limit  int

	allocated   int
	deallocated int
	inUse       int
}

// NewLimitAllocator returns a LimitAllocator drawing from parent. A nil
// parent means SystemAllocator. A limit <= 0 disables the budget.
func NewLimitAllocator(parent Allocator, limit int) *LimitAllocator {
	if parent == nil {
		parent = SystemAllocator
	}

	return &LimitAllocator{parent: parent, limit: limit}
}

func (a *LimitAllocator) Alloc(size int, memory []byte) []byte {
	switch modeOf(size, memory) {
	case allocModeAllocate:
		if !a.fits(size) {
			return nil
		}

		b := a.parent.Alloc(size, nil)
		if b == nil {
			return nil
		}

		a.allocated += len(b)
		a.inUse += len(b)

		return b
	case allocModeReallocate:
		if !a.fits(size - len(memory)) {
			return nil
		}

		old := len(memory)
		b := a.parent.Alloc(size, memory)
		if b == nil {
			return nil
		}

		a.allocated += len(b)
		a.deallocated += old
		a.inUse += len(b) - old

		return b
	case allocModeDeallocate:
		a.deallocated += len(memory)
		a.inUse -= len(memory)
		a.parent.Alloc(0, memory)

		return nil
	default:
		return nil
	}
}

func (a *LimitAllocator) fits(extra int) bool {
	return a.limit <= 0 || a.inUse+extra <= a.limit
}

// SetLimit changes the byte budget. Blocks already handed out are not
// affected.
func (a *LimitAllocator) SetLimit(limit int) {
	a.limit = limit
}

// Allocated is the total number of bytes ever handed out.
func (a *LimitAllocator) Allocated() int { return a.allocated }

// Deallocated is the total number of bytes ever released.
func (a *LimitAllocator) Deallocated() int { return a.deallocated }

// InUse is the number of bytes currently handed out.
func (a *LimitAllocator) InUse() int { return a.inUse }
