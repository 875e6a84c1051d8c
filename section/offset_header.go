package section

import (
	"fmt"

	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// OffsetHeader is the 12-byte header of an offset table section.
type OffsetHeader struct {
	Version  format.Version // 1 byte, offset 0
	Reserved [3]byte        // 3 bytes, offset 1-3, must be zero

	// IndexOffset is the byte offset of the sparse map body, padding included.
	IndexOffset uint32 // 4 bytes, offset 4-7
	// IndexSize is the size of the sparse map body in bytes.
	IndexSize uint32 // 4 bytes, offset 8-11
}

// NewOffsetHeader creates a header for the latest version with the body placed
// at the first aligned offset after the header.
func NewOffsetHeader() OffsetHeader {
	return OffsetHeader{
		Version:     format.Latest,
		IndexOffset: uint32(Align8(OffsetHeaderSize)),
	}
}

// Parse parses the header from the start of data.
// It returns ErrVersionMismatch if the version tag is not the supported one.
func (h *OffsetHeader) Parse(data []byte) error {
	if len(data) < OffsetHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.Section()
	h.Version = format.Version(data[0])
	copy(h.Reserved[:], data[1:4])
	h.IndexOffset = engine.Uint32(data[4:8])
	h.IndexSize = engine.Uint32(data[8:12])

	if h.Version != format.Latest {
		return fmt.Errorf("%w: offset table version %s, want %s", errs.ErrVersionMismatch, h.Version, format.Latest)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h *OffsetHeader) AppendTo(dst []byte) []byte {
	engine := endian.Section()
	dst = append(dst, byte(h.Version))
	dst = append(dst, h.Reserved[:]...)
	dst = engine.AppendUint32(dst, h.IndexOffset)
	dst = engine.AppendUint32(dst, h.IndexSize)

	return dst
}

// Bytes serializes the header into a new 12-byte slice.
func (h *OffsetHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, OffsetHeaderSize))
}
