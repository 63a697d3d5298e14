package densemap

import "fmt"

// table is the engine behind Map and Set. The probe index maps hash buckets
// to dense slots; keys and values live packed at the front of the dense
// store, so [0, count) can be walked without looking at the index.
type table[K comparable, V any] struct {
	block  []byte
	index  probeIndex
	dense  denseStore[K, V]
	layout layout

	count      uint64
	tombstones uint64

	// Whole percents: load in [1, 100], grow in [10, 250].
	loadFactor uint8
	growFactor uint8

	hashFunc  HashFunc[K]
	equalFunc EqualFunc[K]
	allocator Allocator

	emptyV V
}

func (t *table[K, V]) init(capacity int, opts ...Option[K, V]) error {
	if capacity < 1 {
		return ErrInvalidCapacity
	}

	cfg := resolveConfig(opts...)
	if err := cfg.validate(); err != nil {
		return err
	}

	t.loadFactor = percent(cfg.loadFactor)
	t.growFactor = percent(cfg.growFactor)
	t.hashFunc = cfg.hashFunc
	t.equalFunc = cfg.equalFunc
	t.allocator = cfg.allocator

	return t.alloc(uint64(capacity))
}

// alloc sets t up empty with room for capacity entries. On failure t is left
// untouched.
func (t *table[K, V]) alloc(capacity uint64) error {
	l := newLayout[K, V](capacity, t.loadFactor)
	if _, ok := l.bytes(); !ok {
		return fmt.Errorf("%w: capacity %d overflows the table size", ErrAllocFailed, capacity)
	}

	size := l.indexSize()

	block := t.allocator.Alloc(int(size), nil)
	if uint64(len(block)) < size {
		if block != nil {
			t.allocator.Alloc(0, block)
		}

		return fmt.Errorf("%w: %d bytes for %d buckets", ErrAllocFailed, size, l.indexCapacity)
	}

	t.block = block
	t.layout = l
	t.index = newProbeIndex(block, l)
	t.dense = newDenseStore[K, V](capacity)
	t.count = 0
	t.tombstones = 0

	return nil
}

// release hands the block back to the allocator and leaves t freed.
func (t *table[K, V]) release() {
	if t.block != nil {
		t.allocator.Alloc(0, t.block)
	}

	t.block = nil
	t.index = probeIndex{}
	t.dense = denseStore[K, V]{}
	t.layout = layout{}
	t.count = 0
	t.tombstones = 0
}

func (t *table[K, V]) freed() bool {
	return t.block == nil
}

// find probes for key. Deleted buckets do not end the probe; only an empty
// bucket does, or having visited every bucket once.
func (t *table[K, V]) find(key K) (bucket uint64, slot uint64, ok bool) {
	if t.count == 0 {
		return 0, 0, false
	}

	mask := t.index.hashMask
	bucket = t.hashFunc(key) & mask

	for range t.index.len() {
		v := t.index.load(bucket)

		switch t.index.state(v) {
		case bucketEmpty:
			return 0, 0, false
		case bucketOccupied:
			if t.equalFunc(key, t.dense.keys[v]) {
				return bucket, v, true
			}
		}

		bucket = (bucket + 1) & mask
	}

	return 0, 0, false
}

func (t *table[K, V]) get(key K) (V, bool) {
	_, slot, ok := t.find(key)
	if !ok {
		return t.emptyV, false
	}

	return t.dense.values[slot], true
}

func (t *table[K, V]) ref(key K) *V {
	_, slot, ok := t.find(key)
	if !ok {
		return nil
	}

	return &t.dense.values[slot]
}

// set inserts or updates key. It reports whether the key is new.
func (t *table[K, V]) set(key K, value V) (bool, error) {
	if t.freed() {
		return false, ErrFreed
	}

	// Keep at least one empty bucket around so misses stop early.
	if t.tombstones > 0 && t.count+t.tombstones+1 >= t.index.len() {
		t.compact()
	}

	var (
		mask   = t.index.hashMask
		bucket = t.hashFunc(key) & mask

		target    uint64
		available bool
	)

probe:
	for range t.index.len() {
		v := t.index.load(bucket)

		switch t.index.state(v) {
		case bucketOccupied:
			if t.equalFunc(key, t.dense.keys[v]) {
				t.dense.values[v] = value
				return false, nil
			}
		case bucketDeleted:
			if !available {
				target, available = bucket, true
			}
		case bucketEmpty:
			if !available {
				target, available = bucket, true
			}

			break probe
		}

		bucket = (bucket + 1) & mask
	}

	if !available || t.count >= t.layout.capacity {
		if err := t.grow(); err != nil {
			return false, err
		}

		return t.set(key, value)
	}

	if t.index.state(t.index.load(target)) == bucketDeleted {
		t.tombstones--
	}

	slot := t.count
	t.index.store(target, slot)
	t.dense.put(slot, key, value)
	t.count++

	return true, nil
}

// delete removes key and returns its value. The last dense entry is moved
// into the hole so the dense store stays packed.
func (t *table[K, V]) delete(key K) (V, bool) {
	bucket, slot, ok := t.find(key)
	if !ok {
		return t.emptyV, false
	}

	removed := t.dense.values[slot]
	last := t.count - 1

	if slot != last {
		t.index.store(t.locate(last), slot)
		t.dense.move(slot, last)
	}

	t.index.store(bucket, t.index.deleted())
	t.dense.zero(last)
	t.count--
	t.tombstones++

	return removed, true
}

// locate returns the bucket that points at a live dense slot.
func (t *table[K, V]) locate(slot uint64) uint64 {
	mask := t.index.hashMask
	bucket := t.hashFunc(t.dense.keys[slot]) & mask

	for range t.index.len() {
		v := t.index.load(bucket)
		if v == slot {
			return bucket
		}

		if t.index.state(v) == bucketEmpty {
			break
		}

		bucket = (bucket + 1) & mask
	}

	// A hash function that is not stable for equal keys can hide the bucket
	// from the probe; fall back to a full scan.
	for i := range t.index.len() {
		if t.index.load(i) == slot {
			return i
		}
	}

	panic(fmt.Sprintf("densemap: dense slot %d has no bucket", slot))
}

// grow moves every entry into a larger table. On failure nothing changes.
func (t *table[K, V]) grow() error {
	if t.freed() {
		return ErrFreed
	}

	nt := table[K, V]{
		loadFactor: t.loadFactor,
		growFactor: t.growFactor,
		hashFunc:   t.hashFunc,
		equalFunc:  t.equalFunc,
		allocator:  t.allocator,
	}

	if err := nt.alloc(growCapacity(t.layout.capacity, t.growFactor)); err != nil {
		return err
	}

	for i := range t.count {
		// Bucket placement depends on the new index size, so entries go
		// through set rather than being copied.
		if _, err := nt.set(t.dense.keys[i], t.dense.values[i]); err != nil {
			nt.release()
			return err
		}
	}

	t.release()
	*t = nt

	return nil
}

// compact rebuilds the index from the dense store, dropping every tombstone.
func (t *table[K, V]) compact() {
	if t.freed() {
		return
	}

	t.index.clear()
	t.tombstones = 0

	mask := t.index.hashMask
	for slot := range t.count {
		bucket := t.hashFunc(t.dense.keys[slot]) & mask
		for t.index.state(t.index.load(bucket)) != bucketEmpty {
			bucket = (bucket + 1) & mask
		}

		t.index.store(bucket, slot)
	}
}

func (t *table[K, V]) reset() {
	if t.freed() {
		return
	}

	t.dense.reset(t.count)
	t.index.clear()
	t.count = 0
	t.tombstones = 0
}

func (t *table[K, V]) setLoadFactor(f float64) error {
	if !validLoadFactor(f) {
		return ErrInvalidLoadFactor
	}

	t.loadFactor = percent(f)
	return nil
}

func (t *table[K, V]) setGrowFactor(f float64) error {
	if !validGrowFactor(f) {
		return ErrInvalidGrowFactor
	}

	t.growFactor = percent(f)
	return nil
}

func (t *table[K, V]) stats() Stats {
	s := Stats{
		Count:         int(t.count),
		Capacity:      int(t.layout.capacity),
		IndexCapacity: int(t.layout.indexCapacity),
		IndexStride:   int(t.layout.indexStride),
		Tombstones:    int(t.tombstones),
		LoadFactor:    float64(t.loadFactor) / 100,
		GrowFactor:    float64(t.growFactor) / 100,
		Footprint:     t.layout.size(),
	}

	if t.layout.indexCapacity > 0 {
		s.TombstonesCapacityRatio = float32(t.tombstones) / float32(t.layout.indexCapacity)
	}

	if t.count > 0 {
		s.TombstonesSizeRatio = float32(t.tombstones) / float32(t.count)
	}

	return s
}
