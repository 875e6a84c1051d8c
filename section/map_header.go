package section

import (
	"fmt"

	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// MapHeader is the 32-byte header of a blocked sparse map body.
//
// Keys are stored as a fixed-width uint32 array so lookups can binary search the
// image in place. Block offsets hold BlockCount+1 entries relative to BlocksOffset;
// the last entry equals BlocksSize.
type MapHeader struct {
	Version  format.Version       // 1 byte, offset 0
	Encoding format.BlockEncoding // 1 byte, offset 1
	Reserved uint16               // 2 bytes, offset 2-3

	BlockSize          uint32 // 4 bytes, offset 4-7
	KeyCount           uint32 // 4 bytes, offset 8-11
	BlockCount         uint32 // 4 bytes, offset 12-15
	KeysOffset         uint32 // 4 bytes, offset 16-19
	BlockOffsetsOffset uint32 // 4 bytes, offset 20-23
	BlocksOffset       uint32 // 4 bytes, offset 24-27
	BlocksSize         uint32 // 4 bytes, offset 28-31
}

// Parse parses the header from the start of data.
func (h *MapHeader) Parse(data []byte) error {
	if len(data) < MapHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.Section()
	h.Version = format.Version(data[0])
	h.Encoding = format.BlockEncoding(data[1])
	h.Reserved = engine.Uint16(data[2:4])
	h.BlockSize = engine.Uint32(data[4:8])
	h.KeyCount = engine.Uint32(data[8:12])
	h.BlockCount = engine.Uint32(data[12:16])
	h.KeysOffset = engine.Uint32(data[16:20])
	h.BlockOffsetsOffset = engine.Uint32(data[20:24])
	h.BlocksOffset = engine.Uint32(data[24:28])
	h.BlocksSize = engine.Uint32(data[28:32])

	if h.Version != format.Latest {
		return fmt.Errorf("%w: sparse map version %s, want %s", errs.ErrVersionMismatch, h.Version, format.Latest)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h *MapHeader) AppendTo(dst []byte) []byte {
	engine := endian.Section()
	dst = append(dst, byte(h.Version), byte(h.Encoding))
	dst = engine.AppendUint16(dst, h.Reserved)
	dst = engine.AppendUint32(dst, h.BlockSize)
	dst = engine.AppendUint32(dst, h.KeyCount)
	dst = engine.AppendUint32(dst, h.BlockCount)
	dst = engine.AppendUint32(dst, h.KeysOffset)
	dst = engine.AppendUint32(dst, h.BlockOffsetsOffset)
	dst = engine.AppendUint32(dst, h.BlocksOffset)
	dst = engine.AppendUint32(dst, h.BlocksSize)

	return dst
}
