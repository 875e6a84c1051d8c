package format

type (
	// Version is the format version tag stored in the first byte of every section header.
	Version uint8
	// BlockEncoding identifies the per-block value codec of a sparse map.
	BlockEncoding uint8
	// CompressionType identifies the compression applied to text pool blocks.
	CompressionType uint8
)

const (
	V0 Version = 0x0 // V0 is the only version understood by this build.

	Latest = V0 // Latest is the version written by builders.
)

const (
	EncodingUvarint BlockEncoding = 0x1 // EncodingUvarint stores each value as an absolute unsigned varint.
	EncodingDelta   BlockEncoding = 0x2 // EncodingDelta stores the first value absolute and the rest as zigzag deltas.
	EncodingFields  BlockEncoding = 0x3 // EncodingFields stores metadata (tag, string id) lists.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (v Version) String() string {
	switch v {
	case V0:
		return "V0"
	default:
		return "Unknown"
	}
}

func (e BlockEncoding) String() string {
	switch e {
	case EncodingUvarint:
		return "Uvarint"
	case EncodingDelta:
		return "Delta"
	case EncodingFields:
		return "Fields"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
