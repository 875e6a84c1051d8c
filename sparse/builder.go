package sparse

import (
	"fmt"
	"io"

	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
	"github.com/arloliu/featidx/internal/invariants"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/internal/pool"
	"github.com/arloliu/featidx/section"
)

// Builder accumulates key/value pairs and serializes them once with Freeze.
//
// A Builder is used by a single goroutine for a single pass.
type Builder[T any] struct {
	codec     encoding.BlockCodec[T]
	blockSize int
	keys      []uint32
	values    []T
	frozen    bool
}

// NewBuilder creates a builder that encodes blocks with codec.
//
// Returns an error if an option is invalid.
func NewBuilder[T any](codec encoding.BlockCodec[T], opts ...BuilderOption) (*Builder[T], error) {
	cfg := newBuilderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Builder[T]{
		codec:     codec,
		blockSize: cfg.blockSize,
	}, nil
}

// Put appends a pair. key must be greater than every key put before.
func (b *Builder[T]) Put(key uint32, value T) {
	if invariants.Enabled {
		if b.frozen {
			invariants.Panicf("sparse: Put(%d) after Freeze", key)
		}
		if n := len(b.keys); n > 0 && key <= b.keys[n-1] {
			invariants.Panicf("sparse: key %d is not greater than previous key %d", key, b.keys[n-1])
		}
	}

	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
}

// Len returns the number of pairs put so far.
func (b *Builder[T]) Len() int {
	return len(b.keys)
}

// Freeze writes the map body to w and returns the number of bytes written.
//
// The body is encoded into a pooled buffer first so the header can be written with
// its final offsets before any body byte. Freeze must be called exactly once; later
// calls return errs.ErrBuilderFrozen.
func (b *Builder[T]) Freeze(w io.Writer) (int64, error) {
	if b.frozen {
		return 0, errs.ErrBuilderFrozen
	}
	b.frozen = true

	blocks := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(blocks)

	blockCount := (len(b.keys) + b.blockSize - 1) / b.blockSize
	blockOffsets := make([]uint32, 0, blockCount+1)
	for start := 0; start < len(b.values); start += b.blockSize {
		end := min(start+b.blockSize, len(b.values))
		off, err := section.CheckOffset(blocks.Pos())
		if err != nil {
			return 0, err
		}
		blockOffsets = append(blockOffsets, off)
		blocks.B = b.codec.AppendBlock(blocks.B, b.values[start:end])
	}
	blocksSize, err := section.CheckOffset(blocks.Pos())
	if err != nil {
		return 0, err
	}
	blockOffsets = append(blockOffsets, blocksSize)

	keysOffset := section.Align8(section.MapHeaderSize)
	blockOffsetsOffset := section.Align8(keysOffset + 4*int64(len(b.keys)))
	blocksOffset := section.Align8(blockOffsetsOffset + 4*int64(len(blockOffsets)))
	if _, err := section.CheckOffset(blocksOffset + int64(blocksSize)); err != nil {
		return 0, fmt.Errorf("sparse map body: %w", err)
	}

	header := section.MapHeader{
		Version:            format.Latest,
		Encoding:           b.codec.Encoding(),
		BlockSize:          uint32(b.blockSize),
		KeyCount:           uint32(len(b.keys)),
		BlockCount:         uint32(blockCount),
		KeysOffset:         uint32(keysOffset),
		BlockOffsetsOffset: uint32(blockOffsetsOffset),
		BlocksOffset:       uint32(blocksOffset),
		BlocksSize:         blocksSize,
	}

	out := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(out)

	out.Grow(int(blocksOffset) + blocks.Len())
	out.B = header.AppendTo(out.B)
	out.B = section.AppendPadding(out.B)
	for _, k := range b.keys {
		out.AppendUint32(k)
	}
	out.B = section.AppendPadding(out.B)
	for _, off := range blockOffsets {
		out.AppendUint32(off)
	}
	out.B = section.AppendPadding(out.B)
	out.B = append(out.B, blocks.B...)

	return out.WriteTo(w)
}
