package densemap

// Set is a set of keys on the same engine as Map, without value storage.
type Set[K comparable] struct {
	table[K, struct{}]
}

func NewSet[K comparable](capacity int, opts ...Option[K, struct{}]) (*Set[K], error) {
	var s Set[K]
	if err := s.init(capacity, opts...); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Set[K]) Len() int {
	return int(s.count)
}

func (s *Set[K]) Capacity() int {
	return int(s.layout.capacity)
}

// Keys returns the members in their dense order.
func (s *Set[K]) Keys() []K {
	return s.dense.keys[:s.count:s.count]
}

func (s *Set[K]) Has(key K) bool {
	_, _, ok := s.find(key)
	return ok
}

// Puts a key in the set. Returns whether the key is new.
func (s *Set[K]) Put(key K) (bool, error) {
	return s.set(key, struct{}{})
}

// Delete removes a key and reports whether it was present.
func (s *Set[K]) Delete(key K) bool {
	_, ok := s.delete(key)
	return ok
}

func (s *Set[K]) Grow() error {
	return s.grow()
}

func (s *Set[K]) Compact() {
	s.compact()
}

func (s *Set[K]) Reset() {
	s.reset()
}

func (s *Set[K]) Stats() Stats {
	return s.stats()
}

func (s *Set[K]) Free() {
	s.release()
}
