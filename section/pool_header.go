package section

import (
	"fmt"

	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// PoolHeader is the 16-byte header of a text pool body.
//
// It is followed by BlockCount entries of {FirstID uint32, Offset uint32} and a
// trailing uint32 sentinel holding the total size of the block data.
type PoolHeader struct {
	Version     format.Version         // 1 byte, offset 0
	Compression format.CompressionType // 1 byte, offset 1
	Reserved    uint16                 // 2 bytes, offset 2-3

	StringCount  uint32 // 4 bytes, offset 4-7
	BlockCount   uint32 // 4 bytes, offset 8-11
	BlocksOffset uint32 // 4 bytes, offset 12-15
}

// PoolBlockEntrySize is the size of one block table entry.
const PoolBlockEntrySize = 8

// Parse parses the header from the start of data.
func (h *PoolHeader) Parse(data []byte) error {
	if len(data) < PoolHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.Section()
	h.Version = format.Version(data[0])
	h.Compression = format.CompressionType(data[1])
	h.Reserved = engine.Uint16(data[2:4])
	h.StringCount = engine.Uint32(data[4:8])
	h.BlockCount = engine.Uint32(data[8:12])
	h.BlocksOffset = engine.Uint32(data[12:16])

	if h.Version != format.Latest {
		return fmt.Errorf("%w: text pool version %s, want %s", errs.ErrVersionMismatch, h.Version, format.Latest)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h *PoolHeader) AppendTo(dst []byte) []byte {
	engine := endian.Section()
	dst = append(dst, byte(h.Version), byte(h.Compression))
	dst = engine.AppendUint16(dst, h.Reserved)
	dst = engine.AppendUint32(dst, h.StringCount)
	dst = engine.AppendUint32(dst, h.BlockCount)
	dst = engine.AppendUint32(dst, h.BlocksOffset)

	return dst
}
