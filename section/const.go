package section

import "math"

// fixed header sizes in bytes
const (
	OffsetHeaderSize   = 12
	MetadataHeaderSize = 20
	MapHeaderSize      = 32
	PoolHeaderSize     = 16
)

const (
	// Alignment is the byte alignment of every sub-region start.
	Alignment = 8
	// MaxOffset is the largest offset or size a header can record.
	MaxOffset = math.MaxUint32
)
