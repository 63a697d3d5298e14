package densemap

import (
	"hash/maphash"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

type HashFunc[K comparable] func(K) uint64

// EqualFunc reports whether two keys are the same key. It has to agree with
// the HashFunc a table is built with: equal keys must hash equally.
type EqualFunc[K comparable] func(a, b K) bool

func MakeDefaultHashFunc[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

func MakeDefaultEqualFunc[K comparable]() EqualFunc[K] {
	return func(a, b K) bool {
		return a == b
	}
}

// HashString folds every byte of s into an accumulator:
//
//	seed ^= b + 0x9e3779b9 + (seed << 6) + (seed >> 2)
//
// It is the default hash for string keys. Each byte is added unsigned, so
// strings with bytes of 0x80 and above hash differently than they would
// with a signed char.
func HashString(s string) uint64 {
	var seed uint64
	for i := 0; i < len(s); i++ {
		seed ^= uint64(s[i]) + 0x9e3779b9 + (seed << 6) + (seed >> 2)
	}

	return seed
}

// HashXX hashes s with xxHash64. It spreads short, similar keys much better
// than HashString.
func HashXX(s string) uint64 {
	return xxhash.Sum64String(s)
}

// EqualString compares length and then content, so a key never matches a
// longer key it is a prefix of.
func EqualString(a, b string) bool {
	return len(a) == len(b) && a == b
}

func defaultHashFunc[K comparable]() HashFunc[K] {
	var k K
	if _, ok := any(k).(string); ok {
		return func(key K) uint64 {
			return HashString(*(*string)(unsafe.Pointer(&key)))
		}
	}

	return MakeDefaultHashFunc[K](maphash.MakeSeed())
}

func defaultEqualFunc[K comparable]() EqualFunc[K] {
	var k K
	if _, ok := any(k).(string); ok {
		return func(a, b K) bool {
			return EqualString(*(*string)(unsafe.Pointer(&a)), *(*string)(unsafe.Pointer(&b)))
		}
	}

	return MakeDefaultEqualFunc[K]()
}
