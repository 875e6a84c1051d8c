package textpool

import (
	"fmt"
	"io"

	"github.com/arloliu/featidx/compress"
	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
	"github.com/arloliu/featidx/internal/intern"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/internal/pool"
	"github.com/arloliu/featidx/section"
)

// Builder interns strings and serializes them once with Freeze.
// It is not safe for concurrent use.
type Builder struct {
	table      *intern.Table
	codec      compress.Codec
	blockBytes int
	frozen     bool
}

// NewBuilder creates an empty pool builder.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	cfg := newBuilderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	return &Builder{
		table:      intern.NewTable(),
		codec:      codec,
		blockBytes: cfg.blockBytes,
	}, nil
}

// Intern returns the id of s, assigning the next free id if s is new.
// s is copied; the caller may reuse it.
func (b *Builder) Intern(s []byte) uint32 {
	id, _ := b.table.Intern(s)
	return id
}

// InternString is Intern for a string.
func (b *Builder) InternString(s string) uint32 {
	id, _ := b.table.Intern([]byte(s))
	return id
}

// Len returns the number of distinct strings.
func (b *Builder) Len() int {
	return b.table.Len()
}

// RawBytes returns the summed length of all distinct strings.
func (b *Builder) RawBytes() int {
	return b.table.TotalBytes()
}

type blockEntry struct {
	firstID uint32
	offset  uint32
}

// Freeze writes the pool to w and returns the number of bytes written.
// It must be called exactly once.
func (b *Builder) Freeze(w io.Writer) (int64, error) {
	if b.frozen {
		return 0, errs.ErrBuilderFrozen
	}
	b.frozen = true

	raw := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(raw)
	blocks := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(blocks)

	var entries []blockEntry
	firstID := uint32(0)
	flush := func(nextID uint32) error {
		offset, err := section.CheckOffset(blocks.Pos())
		if err != nil {
			return err
		}
		entries = append(entries, blockEntry{firstID: firstID, offset: offset})
		if blocks.B, err = b.codec.Compress(blocks.B, raw.B); err != nil {
			return fmt.Errorf("text pool block %d: %w", len(entries)-1, err)
		}
		raw.Reset()
		firstID = nextID

		return nil
	}

	n := uint32(b.table.Len()) //nolint:gosec
	for id := uint32(0); id < n; id++ {
		raw.B = encoding.AppendBytes(raw.B, b.table.At(id))
		if raw.Len() >= b.blockBytes {
			if err := flush(id + 1); err != nil {
				return 0, err
			}
		}
	}
	if raw.Len() > 0 {
		if err := flush(n); err != nil {
			return 0, err
		}
	}

	blocksSize, err := section.CheckOffset(blocks.Pos())
	if err != nil {
		return 0, err
	}
	blocksOffset := section.Align8(section.PoolHeaderSize + section.PoolBlockEntrySize*int64(len(entries)) + 4)
	if _, err := section.CheckOffset(blocksOffset + int64(blocksSize)); err != nil {
		return 0, fmt.Errorf("text pool: %w", err)
	}

	header := section.PoolHeader{
		Version:      format.Latest,
		Compression:  b.codec.Type(),
		StringCount:  n,
		BlockCount:   uint32(len(entries)), //nolint:gosec
		BlocksOffset: uint32(blocksOffset), //nolint:gosec
	}

	out := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(out)

	out.Grow(int(blocksOffset) + blocks.Len())
	out.B = header.AppendTo(out.B)
	for _, e := range entries {
		out.AppendUint32(e.firstID)
		out.AppendUint32(e.offset)
	}
	out.AppendUint32(blocksSize)
	out.B = section.AppendPadding(out.B)
	out.B = append(out.B, blocks.B...)

	return out.WriteTo(w)
}
