package densemap

import "iter"

// Map is a hash map whose keys and values are kept packed in insertion order
// until the first Delete, which moves the last entry into the freed slot.
// Unlike the built-in map, Keys and Values are plain slices that can be
// walked without hashing.
type Map[K comparable, V any] struct {
	table[K, V]
}

// New returns a map with room for capacity entries before it grows.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Map[K, V], error) {
	var m Map[K, V]
	if err := m.init(capacity, opts...); err != nil {
		return nil, err
	}

	return &m, nil
}

// Number of live entries.
func (m *Map[K, V]) Count() int {
	return int(m.count)
}

// Number of entries the map holds before it has to grow.
func (m *Map[K, V]) Capacity() int {
	return int(m.layout.capacity)
}

// Keys returns the live keys. Keys()[i] belongs with Values()[i].
func (m *Map[K, V]) Keys() []K {
	return m.dense.keys[:m.count:m.count]
}

func (m *Map[K, V]) Values() []V {
	return m.dense.values[:m.count:m.count]
}

// All iterates over the live entries. The map must not be mutated during
// iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.count {
			if !yield(m.dense.keys[i], m.dense.values[i]) {
				return
			}
		}
	}
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.get(key)
}

// Ref returns a pointer to the value stored for key, or nil. The pointer is
// only valid until the next Set, Delete, Grow, Compact, Reset or Free.
func (m *Map[K, V]) Ref(key K) *V {
	return m.ref(key)
}

// Set stores value under key, growing the map if needed. It reports whether
// the key was inserted rather than updated. If growing fails the map is left
// as it was and the error wraps ErrAllocFailed.
func (m *Map[K, V]) Set(key K, value V) (bool, error) {
	return m.set(key, value)
}

// Delete removes key and returns the value it held.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.delete(key)
}

// Grow increases capacity by the grow factor right away.
func (m *Map[K, V]) Grow() error {
	return m.grow()
}

// SetLoadFactor changes the load factor used from the next growth on.
func (m *Map[K, V]) SetLoadFactor(f float64) error {
	return m.setLoadFactor(f)
}

// SetGrowFactor changes the grow factor used from the next growth on.
func (m *Map[K, V]) SetGrowFactor(f float64) error {
	return m.setGrowFactor(f)
}

// Compact drops all tombstones from the index.
func (m *Map[K, V]) Compact() {
	m.compact()
}

// Reset removes every entry but keeps the capacity.
func (m *Map[K, V]) Reset() {
	m.reset()
}

func (m *Map[K, V]) Stats() Stats {
	return m.stats()
}

// Free gives the index memory back to the allocator. A freed map is empty and
// its mutating calls fail with ErrFreed.
func (m *Map[K, V]) Free() {
	m.release()
}
