package metadata

import (
	"fmt"
	"io"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/internal/pool"
	"github.com/arloliu/featidx/section"
	"github.com/arloliu/featidx/sparse"
	"github.com/arloliu/featidx/textpool"
)

// BuilderConfig holds the options of a Builder.
type BuilderConfig struct {
	mapOpts  []sparse.BuilderOption
	poolOpts []textpool.BuilderOption
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*BuilderConfig]

// WithBlockSize sets the number of features per sparse map block.
func WithBlockSize(n int) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.mapOpts = append(c.mapOpts, sparse.WithBlockSize(n))
	})
}

// WithPoolBlockBytes sets the raw size of text pool blocks.
func WithPoolBlockBytes(n int) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.poolOpts = append(c.poolOpts, textpool.WithBlockBytes(n))
	})
}

// WithCompression sets the text pool block compression.
func WithCompression(ct format.CompressionType) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		c.poolOpts = append(c.poolOpts, textpool.WithCompression(ct))
	})
}

// Builder collects metadata in increasing feature id order.
type Builder struct {
	strings *textpool.Builder
	index   *sparse.Builder[[]fieldRef]
	frozen  bool
}

// NewBuilder creates a metadata builder.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	cfg := &BuilderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	strings, err := textpool.NewBuilder(cfg.poolOpts...)
	if err != nil {
		return nil, err
	}
	index, err := sparse.NewBuilder[[]fieldRef](fieldsCodec{}, cfg.mapOpts...)
	if err != nil {
		return nil, err
	}

	return &Builder{strings: strings, index: index}, nil
}

// Put records md for featureID. Empty metadata records nothing.
// Feature ids must be strictly increasing across Put and PutEntries.
func (b *Builder) Put(featureID uint32, md Metadata) {
	if md.Empty() {
		return
	}

	refs := make([]fieldRef, 0, md.Len())
	for f, v := range md.Fields() {
		refs = append(refs, fieldRef{tag: uint8(f), ref: b.strings.InternString(v)})
	}
	b.index.Put(featureID, refs)
}

// PutEntries records entries for featureID as given, keeping their order and
// any repeated or unknown fields.
func (b *Builder) PutEntries(featureID uint32, entries []Entry) {
	if len(entries) == 0 {
		return
	}

	refs := make([]fieldRef, len(entries))
	for i, e := range entries {
		refs[i] = fieldRef{tag: uint8(e.Field), ref: b.strings.InternString(e.Value)}
	}
	b.index.Put(featureID, refs)
}

// Len returns the number of features with metadata.
func (b *Builder) Len() int {
	return b.index.Len()
}

// Freeze writes the metadata section to w and returns the number of bytes written.
func (b *Builder) Freeze(w io.Writer) (int64, error) {
	if b.frozen {
		return 0, errs.ErrBuilderFrozen
	}
	b.frozen = true

	strings := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(strings)
	if _, err := b.strings.Freeze(strings); err != nil {
		return 0, fmt.Errorf("metadata strings: %w", err)
	}

	index := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(index)
	if _, err := b.index.Freeze(index); err != nil {
		return 0, fmt.Errorf("metadata map: %w", err)
	}

	header := section.NewMetadataHeader()
	stringsOffset := section.Align8(section.MetadataHeaderSize)
	mapOffset := section.Align8(stringsOffset + strings.Pos())

	var err error
	if header.StringsOffset, err = section.CheckOffset(stringsOffset); err != nil {
		return 0, err
	}
	if header.StringsSize, err = section.CheckOffset(strings.Pos()); err != nil {
		return 0, err
	}
	if header.MetadataMapOffset, err = section.CheckOffset(mapOffset); err != nil {
		return 0, err
	}
	if header.MetadataMapSize, err = section.CheckOffset(index.Pos()); err != nil {
		return 0, err
	}
	if _, err = section.CheckOffset(mapOffset + index.Pos()); err != nil {
		return 0, err
	}

	out := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(out)

	out.Grow(int(mapOffset) + index.Len())
	out.B = header.AppendTo(out.B)
	out.B = section.AppendPadding(out.B)
	out.B = append(out.B, strings.B...)
	out.B = section.AppendPadding(out.B)
	out.B = append(out.B, index.B...)

	return out.WriteTo(w)
}
