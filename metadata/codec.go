package metadata

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// fieldRef is the persisted form of one entry: a tag and a text pool id.
type fieldRef struct {
	tag uint8
	ref uint32
}

// fieldsCodec encodes every value of a block as
// uvarint count, then count x (u8 tag, uvarint ref).
type fieldsCodec struct{}

var (
	_ encoding.BlockCodec[[]fieldRef]   = fieldsCodec{}
	_ encoding.BlockIndexer[[]fieldRef] = fieldsCodec{}
)

func (fieldsCodec) Encoding() format.BlockEncoding {
	return format.EncodingFields
}

func (fieldsCodec) AppendBlock(dst []byte, values [][]fieldRef) []byte {
	for _, refs := range values {
		dst = appendRefs(dst, refs)
	}

	return dst
}

func appendRefs(dst []byte, refs []fieldRef) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(refs)))
	for _, r := range refs {
		dst = append(dst, r.tag)
		dst = binary.AppendUvarint(dst, uint64(r.ref))
	}

	return dst
}

func (fieldsCodec) DecodeBlock(src []byte, count int, dst [][]fieldRef) ([][]fieldRef, error) {
	dst = dst[:0]
	offset := 0
	for i := 0; i < count; i++ {
		refs, n, err := readRefs(src[offset:])
		if err != nil {
			return dst, fmt.Errorf("value %d of %d: %w", i, count, err)
		}
		dst = append(dst, refs)
		offset += n
	}

	return dst, nil
}

func (fieldsCodec) DecodeAt(src []byte, count int, index int) ([]fieldRef, error) {
	if index < 0 || index >= count {
		return nil, fmt.Errorf("%w: index %d out of block of %d", errs.ErrMalformedBlock, index, count)
	}

	offset := 0
	for i := 0; i < index; i++ {
		n, err := skipRefs(src[offset:])
		if err != nil {
			return nil, fmt.Errorf("value %d of %d: %w", i, count, err)
		}
		offset += n
	}
	refs, _, err := readRefs(src[offset:])

	return refs, err
}

func readRefs(src []byte) ([]fieldRef, int, error) {
	n, offset, err := encoding.ReadUvarint32(src)
	if err != nil {
		return nil, 0, err
	}
	// every entry takes at least two bytes
	if uint64(n)*2 > uint64(len(src)-offset) {
		return nil, 0, fmt.Errorf("%w: %d entries exceed block", errs.ErrMalformedBlock, n)
	}

	refs := make([]fieldRef, n)
	for i := range refs {
		if offset >= len(src) {
			return nil, 0, fmt.Errorf("%w: truncated entry %d", errs.ErrMalformedBlock, i)
		}
		refs[i].tag = src[offset]
		offset++

		ref, m, err := encoding.ReadUvarint32(src[offset:])
		if err != nil {
			return nil, 0, err
		}
		refs[i].ref = ref
		offset += m
	}

	return refs, offset, nil
}

func skipRefs(src []byte) (int, error) {
	n, offset, err := encoding.ReadUvarint32(src)
	if err != nil {
		return 0, err
	}
	for i := uint32(0); i < n; i++ {
		if offset >= len(src) {
			return 0, fmt.Errorf("%w: truncated entry %d", errs.ErrMalformedBlock, i)
		}
		offset++
		_, m, err := encoding.ReadUvarint32(src[offset:])
		if err != nil {
			return 0, err
		}
		offset += m
	}

	return offset, nil
}
