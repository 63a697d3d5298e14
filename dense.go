package densemap

// denseStore holds keys and values side by side. Slots [0, count) of a table
// are always live and contiguous; everything past count is zeroed.
type denseStore[K comparable, V any] struct {
	keys   []K
	values []V
}

func newDenseStore[K comparable, V any](capacity uint64) denseStore[K, V] {
	return denseStore[K, V]{
		keys:   make([]K, capacity),
		values: make([]V, capacity),
	}
}

func (d *denseStore[K, V]) put(slot uint64, key K, value V) {
	d.keys[slot] = key
	d.values[slot] = value
}

func (d *denseStore[K, V]) move(dst, src uint64) {
	d.keys[dst] = d.keys[src]
	d.values[dst] = d.values[src]
}

// zero drops the references held by a vacated slot.
func (d *denseStore[K, V]) zero(slot uint64) {
	var (
		k K
		v V
	)

	d.keys[slot] = k
	d.values[slot] = v
}

func (d *denseStore[K, V]) reset(count uint64) {
	clear(d.keys[:count])
	clear(d.values[:count])
}
