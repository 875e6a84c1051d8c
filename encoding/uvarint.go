package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// UvarintBlockCodec stores each uint32 value as an absolute unsigned varint.
//
// No delta from the previous value is taken. Offsets into a sibling section grow
// with the feature id and would compress better as deltas, see DeltaBlockCodec,
// but this is the encoding every shipped table is written with.
type UvarintBlockCodec struct{}

var (
	_ BlockCodec[uint32]   = UvarintBlockCodec{}
	_ BlockIndexer[uint32] = UvarintBlockCodec{}
)

// NewUvarintBlockCodec returns the absolute varint codec.
func NewUvarintBlockCodec() UvarintBlockCodec {
	return UvarintBlockCodec{}
}

// Encoding returns format.EncodingUvarint.
func (UvarintBlockCodec) Encoding() format.BlockEncoding {
	return format.EncodingUvarint
}

// AppendBlock appends every value as a uvarint.
func (UvarintBlockCodec) AppendBlock(dst []byte, values []uint32) []byte {
	for _, v := range values {
		dst = binary.AppendUvarint(dst, uint64(v))
	}

	return dst
}

// DecodeBlock decodes count uvarints from src.
func (UvarintBlockCodec) DecodeBlock(src []byte, count int, dst []uint32) ([]uint32, error) {
	dst = dst[:0]
	offset := 0
	for i := 0; i < count; i++ {
		v, n, err := ReadUvarint32(src[offset:])
		if err != nil {
			return dst, fmt.Errorf("value %d of %d: %w", i, count, err)
		}
		dst = append(dst, v)
		offset += n
	}

	return dst, nil
}

// DecodeAt skips index values and decodes the next one.
func (UvarintBlockCodec) DecodeAt(src []byte, count int, index int) (uint32, error) {
	if index < 0 || index >= count {
		return 0, fmt.Errorf("%w: index %d out of block of %d", errs.ErrMalformedBlock, index, count)
	}

	offset := 0
	for i := 0; i < index; i++ {
		n := skipUvarint(src[offset:])
		if n <= 0 {
			return 0, fmt.Errorf("%w: truncated before value %d", errs.ErrMalformedBlock, i)
		}
		offset += n
	}

	v, _, err := ReadUvarint32(src[offset:])

	return v, err
}

// ReadUvarint32 reads one uvarint that must fit into 32 bits.
// It returns the value and the number of bytes consumed.
func ReadUvarint32(src []byte) (uint32, int, error) {
	v, n := binary.Uvarint(src)
	if n <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid uvarint", errs.ErrMalformedBlock)
	}
	if v > 0xFFFFFFFF {
		return 0, 0, fmt.Errorf("%w: uvarint %d overflows uint32", errs.ErrMalformedBlock, v)
	}

	return uint32(v), n, nil
}

func skipUvarint(src []byte) int {
	for i, b := range src {
		if i >= binary.MaxVarintLen64 {
			return -1
		}
		if b < 0x80 {
			return i + 1
		}
	}

	return 0
}
