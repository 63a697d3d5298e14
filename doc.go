// Package densemap provides an open-addressing hash table that keeps its
// entries packed.
//
// A table is two parts. A sparse, power-of-two probe index maps hash buckets
// to slots. A dense store holds the keys and values in parallel slices, and
// its first Count slots are always exactly the live entries. Lookups probe
// linearly through the index. Deletes leave a tombstone in the index, and the
// last dense entry is moved into the hole. Growth is triggered from inside
// Set once the dense store is full.
//
// Index entries are 1, 2, 4 or 8 bytes wide depending on the size of the
// index. The index memory comes from an Allocator, which can be swapped out
// to budget or account for it.
//
// Tables are not safe for concurrent use. Pointers returned by Ref and
// slices returned by Keys and Values alias the table's storage. They are
// invalidated by the next call that mutates the table.
package densemap
