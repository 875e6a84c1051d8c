// Package offsettable implements the per-feature offset table ("height table"):
// a sparse map from feature id to a uint32 byte offset into a sibling data section.
//
// Section layout, little-endian:
//
//	OffsetHeader (12 bytes): version u8, reserved [3]u8, indexOffset u32, indexSize u32
//	padding to 8
//	sparse map body (indexSize bytes at indexOffset)
//
// The table knows nothing about the data its offsets point into. Terrain heights
// are the canonical user, but any section addressed by feature id can be indexed
// the same way.
package offsettable

import (
	"fmt"
	"io"

	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/internal/pool"
	"github.com/arloliu/featidx/section"
	"github.com/arloliu/featidx/sparse"
)

// Builder collects feature id to offset pairs in increasing feature id order.
type Builder struct {
	index *sparse.Builder[uint32]
}

// NewBuilder creates an offset table builder. Options configure the underlying sparse map.
func NewBuilder(opts ...sparse.BuilderOption) (*Builder, error) {
	index, err := sparse.NewBuilder[uint32](encoding.NewUvarintBlockCodec(), opts...)
	if err != nil {
		return nil, err
	}

	return &Builder{index: index}, nil
}

// Put records offset for featureID. Feature ids must be strictly increasing.
func (b *Builder) Put(featureID uint32, offset uint32) {
	b.index.Put(featureID, offset)
}

// Len returns the number of entries put so far.
func (b *Builder) Len() int {
	return b.index.Len()
}

// Freeze writes the table section to w and returns the number of bytes written.
func (b *Builder) Freeze(w io.Writer) (int64, error) {
	body := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(body)

	if _, err := b.index.Freeze(body); err != nil {
		return 0, err
	}

	header := section.NewOffsetHeader()
	size, err := section.CheckOffset(body.Pos())
	if err != nil {
		return 0, fmt.Errorf("offset table index: %w", err)
	}
	header.IndexSize = size

	out := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(out)

	out.B = header.AppendTo(out.B)
	out.B = section.AppendPadding(out.B)
	out.B = append(out.B, body.B...)

	return out.WriteTo(w)
}

// Table is a loaded offset table. It is safe for concurrent use.
type Table struct {
	index *sparse.Map[uint32]
}

// Load opens the table section at the start of data.
//
// It fails with errs.ErrVersionMismatch if the section was written by an
// incompatible version, or errs.ErrTruncatedSection if the index body does not fit
// into data. Either way the caller should treat the table as absent.
func Load(data []byte) (*Table, error) {
	var header section.OffsetHeader
	if err := header.Parse(data); err != nil {
		return nil, err
	}

	if err := section.CheckAligned("offset table index", header.IndexOffset); err != nil {
		return nil, err
	}
	body, err := section.Window(data, header.IndexOffset, header.IndexSize)
	if err != nil {
		return nil, fmt.Errorf("offset table index: %w", err)
	}

	index, err := sparse.Load[uint32](body, encoding.NewUvarintBlockCodec())
	if err != nil {
		return nil, fmt.Errorf("offset table index: %w", err)
	}

	return &Table{index: index}, nil
}

// Get returns the offset stored for featureID.
func (t *Table) Get(featureID uint32) (uint32, bool) {
	return t.index.Get(featureID)
}

// Len returns the number of features in the table.
func (t *Table) Len() int {
	return t.index.Len()
}
