package sparse

import (
	"fmt"
	"iter"
	"sort"

	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/section"
)

// Map is a read-only view over a frozen sparse map body.
type Map[T any] struct {
	codec     encoding.BlockCodec[T]
	indexer   encoding.BlockIndexer[T] // nil if codec cannot decode single values
	engine    endian.EndianEngine
	keys      []byte
	offsets   []byte
	blocks    []byte
	keyCount  int
	blockSize int
}

// Load opens the map body at the start of data.
//
// data is not copied; it must stay valid and unmodified while the Map is in use.
// Load fails with errs.ErrVersionMismatch, errs.ErrCodecMismatch or
// errs.ErrTruncatedSection, in which case the whole section must be treated as absent.
func Load[T any](data []byte, codec encoding.BlockCodec[T]) (*Map[T], error) {
	var header section.MapHeader
	if err := header.Parse(data); err != nil {
		return nil, err
	}

	if header.Encoding != codec.Encoding() {
		return nil, fmt.Errorf("%w: section uses %s, loader expects %s", errs.ErrCodecMismatch, header.Encoding, codec.Encoding())
	}
	if header.BlockSize == 0 || header.BlockSize > MaxBlockSize {
		return nil, fmt.Errorf("%w: block size %d", errs.ErrTruncatedSection, header.BlockSize)
	}
	wantBlocks := (uint64(header.KeyCount) + uint64(header.BlockSize) - 1) / uint64(header.BlockSize)
	if uint64(header.BlockCount) != wantBlocks {
		return nil, fmt.Errorf("%w: %d blocks for %d keys of block size %d",
			errs.ErrTruncatedSection, header.BlockCount, header.KeyCount, header.BlockSize)
	}

	m := &Map[T]{
		codec:     codec,
		engine:    endian.Section(),
		keyCount:  int(header.KeyCount),
		blockSize: int(header.BlockSize),
	}
	if indexer, ok := codec.(encoding.BlockIndexer[T]); ok {
		m.indexer = indexer
	}

	var err error
	if m.keys, err = arrayWindow(data, header.KeysOffset, uint64(header.KeyCount)); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	if m.offsets, err = arrayWindow(data, header.BlockOffsetsOffset, uint64(header.BlockCount)+1); err != nil {
		return nil, fmt.Errorf("block offsets: %w", err)
	}
	if m.blocks, err = section.Window(data, header.BlocksOffset, header.BlocksSize); err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}

	return m, nil
}

func arrayWindow(data []byte, offset uint32, count uint64) ([]byte, error) {
	size := count * 4
	if size > section.MaxOffset {
		return nil, fmt.Errorf("%w: array of %d entries", errs.ErrTruncatedSection, count)
	}

	return section.Window(data, offset, uint32(size))
}

// Len returns the number of keys.
func (m *Map[T]) Len() int {
	return m.keyCount
}

// BlockCount returns the number of encoded blocks.
func (m *Map[T]) BlockCount() int {
	return (m.keyCount + m.blockSize - 1) / m.blockSize
}

// BlockBounds returns the smallest and largest key of block i.
func (m *Map[T]) BlockBounds(i int) (lo, hi uint32) {
	first := i * m.blockSize
	last := min(first+m.blockSize, m.keyCount) - 1

	return m.keyAt(first), m.keyAt(last)
}

func (m *Map[T]) keyAt(i int) uint32 {
	return m.engine.Uint32(m.keys[4*i:])
}

// Get returns the value stored for key.
//
// A missing key and an undecodable block both report false; use Lookup to tell them apart.
func (m *Map[T]) Get(key uint32) (T, bool) {
	v, ok, err := m.Lookup(key)
	if err != nil {
		var zero T
		return zero, false
	}

	return v, ok
}

// Lookup returns the value stored for key. A missing key is not an error.
func (m *Map[T]) Lookup(key uint32) (T, bool, error) {
	var zero T

	i := sort.Search(m.keyCount, func(i int) bool {
		return m.keyAt(i) >= key
	})
	if i == m.keyCount || m.keyAt(i) != key {
		return zero, false, nil
	}

	block, index := i/m.blockSize, i%m.blockSize
	src, count, err := m.block(block)
	if err != nil {
		return zero, false, err
	}

	if m.indexer != nil {
		v, err := m.indexer.DecodeAt(src, count, index)
		if err != nil {
			return zero, false, fmt.Errorf("block %d: %w", block, err)
		}

		return v, true, nil
	}

	values, err := m.codec.DecodeBlock(src, count, nil)
	if err != nil {
		return zero, false, fmt.Errorf("block %d: %w", block, err)
	}

	return values[index], true, nil
}

// block returns the encoded bytes and entry count of block i.
func (m *Map[T]) block(i int) ([]byte, int, error) {
	lo := m.engine.Uint32(m.offsets[4*i:])
	hi := m.engine.Uint32(m.offsets[4*i+4:])
	if lo > hi || int(hi) > len(m.blocks) {
		return nil, 0, fmt.Errorf("%w: block %d spans [%d, %d) of %d bytes", errs.ErrMalformedBlock, i, lo, hi, len(m.blocks))
	}
	count := min(m.blockSize, m.keyCount-i*m.blockSize)

	return m.blocks[lo:hi:hi], count, nil
}

// All iterates over all pairs in key order. Iteration stops early at the first
// block that cannot be decoded.
func (m *Map[T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		var values []T
		for b := 0; b < m.BlockCount(); b++ {
			src, count, err := m.block(b)
			if err != nil {
				return
			}
			values, err = m.codec.DecodeBlock(src, count, values)
			if err != nil {
				return
			}
			for j, v := range values {
				if !yield(m.keyAt(b*m.blockSize+j), v) {
					return
				}
			}
		}
	}
}
