package compress

import (
	"fmt"

	"github.com/arloliu/featidx/format"
	"github.com/klauspost/compress/s2"
)

// S2Codec compresses blocks with the S2 block format.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns the s2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress appends the s2 encoding of src to dst.
func (S2Codec) Compress(dst, src []byte) ([]byte, error) {
	start := len(dst)
	dst = grow(dst, s2.MaxEncodedLen(len(src)))
	encoded := s2.EncodeBetter(dst[start:cap(dst)], src)

	return dst[:start+len(encoded)], nil
}

// Decompress decodes src into dst[:0].
func (S2Codec) Decompress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst[:0], nil
	}

	n, err := s2.DecodedLen(src)
	if err != nil {
		return dst[:0], fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > MaxBlockSize {
		return dst[:0], fmt.Errorf("s2 decompression failed: block of %d bytes exceeds limit", n)
	}

	out, err := s2.Decode(grow(dst[:0], n)[:n], src)
	if err != nil {
		return dst[:0], fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// grow returns dst with room for at least n more bytes.
func grow(dst []byte, n int) []byte {
	if cap(dst)-len(dst) >= n {
		return dst
	}
	grown := make([]byte, len(dst), len(dst)+n)
	copy(grown, dst)

	return grown
}
