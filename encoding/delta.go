package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// DeltaBlockCodec stores the first value of a block as an absolute uvarint and
// every following value as the zigzag varint of its difference to the previous one.
//
// Differences are taken in 64-bit arithmetic, so decreasing sequences and the
// full uint32 range round-trip. The codec is complete but not selected by any
// builder by default; switching a table to it changes only the Encoding byte in
// the map header, not the header shape.
type DeltaBlockCodec struct{}

var _ BlockCodec[uint32] = DeltaBlockCodec{}

// NewDeltaBlockCodec returns the delta codec.
func NewDeltaBlockCodec() DeltaBlockCodec {
	return DeltaBlockCodec{}
}

// Encoding returns format.EncodingDelta.
func (DeltaBlockCodec) Encoding() format.BlockEncoding {
	return format.EncodingDelta
}

// AppendBlock appends the delta encoding of values.
func (DeltaBlockCodec) AppendBlock(dst []byte, values []uint32) []byte {
	if len(values) == 0 {
		return dst
	}

	dst = binary.AppendUvarint(dst, uint64(values[0]))
	prev := int64(values[0])
	for _, v := range values[1:] {
		cur := int64(v)
		dst = binary.AppendVarint(dst, cur-prev)
		prev = cur
	}

	return dst
}

// DecodeBlock reverses AppendBlock.
func (DeltaBlockCodec) DecodeBlock(src []byte, count int, dst []uint32) ([]uint32, error) {
	dst = dst[:0]
	if count <= 0 {
		return dst, nil
	}

	first, offset, err := ReadUvarint32(src)
	if err != nil {
		return dst, err
	}
	dst = append(dst, first)

	prev := int64(first)
	for i := 1; i < count; i++ {
		delta, n := binary.Varint(src[offset:])
		if n <= 0 {
			return dst, fmt.Errorf("%w: invalid delta at value %d", errs.ErrMalformedBlock, i)
		}
		offset += n

		cur := prev + delta
		if cur < 0 || cur > 0xFFFFFFFF {
			return dst, fmt.Errorf("%w: delta leaves uint32 range at value %d", errs.ErrMalformedBlock, i)
		}
		dst = append(dst, uint32(cur))
		prev = cur
	}

	return dst, nil
}
