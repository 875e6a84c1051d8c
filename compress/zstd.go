package compress

import "github.com/arloliu/featidx/format"

// ZstdCodec compresses blocks as standard Zstandard frames.
//
// The implementation is selected at build time: pure Go by default, or the cgo
// binding when built with the gozstd tag.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns the zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
