package section

import (
	"fmt"

	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// MetadataHeader is the 20-byte header of a metadata section.
//
// The section body holds the text pool region followed by the metadata map region.
type MetadataHeader struct {
	Version  format.Version // 1 byte, offset 0
	Reserved [3]byte        // 3 bytes, offset 1-3

	StringsOffset     uint32 // 4 bytes, offset 4-7
	StringsSize       uint32 // 4 bytes, offset 8-11
	MetadataMapOffset uint32 // 4 bytes, offset 12-15
	MetadataMapSize   uint32 // 4 bytes, offset 16-19
}

// NewMetadataHeader creates a header for the latest version with zero offsets.
func NewMetadataHeader() MetadataHeader {
	return MetadataHeader{Version: format.Latest}
}

// Parse parses the header from the start of data.
func (h *MetadataHeader) Parse(data []byte) error {
	if len(data) < MetadataHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.Section()
	h.Version = format.Version(data[0])
	copy(h.Reserved[:], data[1:4])
	h.StringsOffset = engine.Uint32(data[4:8])
	h.StringsSize = engine.Uint32(data[8:12])
	h.MetadataMapOffset = engine.Uint32(data[12:16])
	h.MetadataMapSize = engine.Uint32(data[16:20])

	if h.Version != format.Latest {
		return fmt.Errorf("%w: metadata version %s, want %s", errs.ErrVersionMismatch, h.Version, format.Latest)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h *MetadataHeader) AppendTo(dst []byte) []byte {
	engine := endian.Section()
	dst = append(dst, byte(h.Version))
	dst = append(dst, h.Reserved[:]...)
	dst = engine.AppendUint32(dst, h.StringsOffset)
	dst = engine.AppendUint32(dst, h.StringsSize)
	dst = engine.AppendUint32(dst, h.MetadataMapOffset)
	dst = engine.AppendUint32(dst, h.MetadataMapSize)

	return dst
}

// Bytes serializes the header into a new 20-byte slice.
func (h *MetadataHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, MetadataHeaderSize))
}
