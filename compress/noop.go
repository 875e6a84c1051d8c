package compress

import "github.com/arloliu/featidx/format"

// NoOpCodec stores blocks unchanged.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec returns the identity codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress appends src to dst.
func (NoOpCodec) Compress(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// Decompress copies src into dst[:0].
//
// The result never aliases src, so it stays valid after a mapped image is closed.
func (NoOpCodec) Decompress(dst, src []byte) ([]byte, error) {
	return append(dst[:0], src...), nil
}
