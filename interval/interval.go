// Package interval implements a read-only index of (key, value) pairs that answers
// half-open key range queries.
//
// Layout, little-endian:
//
//	header (16 bytes): version u8, reserved [7]u8, count u64
//	entries:           count x {key u64, value u64}, sorted by key then value
//
// The locality index stores covering cell ids as keys and stored object ids as values.
package interval

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
	"github.com/arloliu/featidx/internal/pool"
)

const (
	// HeaderSize is the size of the index header.
	HeaderSize = 16
	// EntrySize is the size of one entry.
	EntrySize = 16
)

// Entry is one indexed pair.
type Entry struct {
	Key   uint64
	Value uint64
}

// Builder collects entries in any order.
type Builder struct {
	entries []Entry
	frozen  bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds one pair. Identical pairs are stored once.
func (b *Builder) Add(key, value uint64) {
	b.entries = append(b.entries, Entry{Key: key, Value: value})
}

// Len returns the number of pairs added, duplicates included.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Freeze sorts the entries and writes the index to w.
func (b *Builder) Freeze(w io.Writer) (int64, error) {
	if b.frozen {
		return 0, errs.ErrBuilderFrozen
	}
	b.frozen = true

	slices.SortFunc(b.entries, func(x, y Entry) int {
		if c := cmp.Compare(x.Key, y.Key); c != 0 {
			return c
		}

		return cmp.Compare(x.Value, y.Value)
	})
	b.entries = slices.Compact(b.entries)

	out := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(out)

	out.Grow(HeaderSize + EntrySize*len(b.entries))
	out.B = append(out.B, byte(format.Latest), 0, 0, 0, 0, 0, 0, 0)
	out.AppendUint64(uint64(len(b.entries)))
	for _, e := range b.entries {
		out.AppendUint64(e.Key)
		out.AppendUint64(e.Value)
	}

	return out.WriteTo(w)
}

// Index is a loaded interval index. It is safe for concurrent use.
type Index struct {
	engine  endian.EndianEngine
	entries []byte
	count   int
}

// Load opens the index at the start of data.
func Load(data []byte) (*Index, error) {
	if len(data) < HeaderSize {
		return nil, errs.ErrInvalidHeaderSize
	}
	if v := format.Version(data[0]); v != format.Latest {
		return nil, fmt.Errorf("%w: interval index version %s, want %s", errs.ErrVersionMismatch, v, format.Latest)
	}

	engine := endian.Section()
	count := engine.Uint64(data[8:16])
	available := uint64(len(data)-HeaderSize) / EntrySize
	if count > available {
		return nil, fmt.Errorf("%w: %d entries, room for %d", errs.ErrTruncatedSection, count, available)
	}
	end := HeaderSize + int(count)*EntrySize

	return &Index{
		engine:  engine,
		entries: data[HeaderSize:end:end],
		count:   int(count),
	}, nil
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return ix.count
}

func (ix *Index) key(i int) uint64 {
	return ix.engine.Uint64(ix.entries[i*EntrySize:])
}

func (ix *Index) value(i int) uint64 {
	return ix.engine.Uint64(ix.entries[i*EntrySize+8:])
}

// ForEach calls fn with the value of every entry whose key is in [lo, hi), in key order.
func (ix *Index) ForEach(fn func(value uint64), lo, hi uint64) {
	if lo >= hi {
		return
	}

	i := sort.Search(ix.count, func(i int) bool {
		return ix.key(i) >= lo
	})
	for ; i < ix.count && ix.key(i) < hi; i++ {
		fn(ix.value(i))
	}
}
