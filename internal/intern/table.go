// Package intern implements the build-local string to id table of the text pool.
package intern

import (
	"bytes"

	"github.com/arloliu/featidx/internal/hash"
)

// Table assigns dense ids to distinct byte strings.
//
// Strings are bucketed by their xxHash64. Two different strings with the same
// hash share a bucket and are told apart by a byte comparison, so a collision
// never merges distinct strings.
//
// Table is not safe for concurrent use.
type Table struct {
	buckets    map[uint64][]uint32 // hash -> ids with that hash
	values     [][]byte            // id -> owned copy of the string
	totalBytes int
	collisions int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		buckets: make(map[uint64][]uint32),
	}
}

// Intern returns the id of b, allocating the next id if b was not seen before.
// The second result reports whether a new id was allocated.
func (t *Table) Intern(b []byte) (uint32, bool) {
	h := hash.Sum(b)

	ids, exists := t.buckets[h]
	for _, id := range ids {
		if bytes.Equal(t.values[id], b) {
			return id, false
		}
	}
	if exists {
		t.collisions++
	}

	id := uint32(len(t.values)) //nolint:gosec
	owned := make([]byte, len(b))
	copy(owned, b)
	t.values = append(t.values, owned)
	t.buckets[h] = append(ids, id)
	t.totalBytes += len(b)

	return id, true
}

// At returns the string with the given id. The result must not be modified.
func (t *Table) At(id uint32) []byte {
	return t.values[id]
}

// Len returns the number of distinct strings.
func (t *Table) Len() int {
	return len(t.values)
}

// TotalBytes returns the summed length of all distinct strings.
func (t *Table) TotalBytes() int {
	return t.totalBytes
}

// Collisions returns how many distinct strings landed in an occupied hash bucket.
func (t *Table) Collisions() int {
	return t.collisions
}

// Reset clears the table but keeps the bucket map's capacity.
func (t *Table) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.values = t.values[:0]
	t.totalBytes = 0
	t.collisions = 0
}
