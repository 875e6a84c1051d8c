//go:build gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

const gozstdLevel = 7

// Compress appends one zstd frame holding src to dst.
func (ZstdCodec) Compress(dst, src []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, src, gozstdLevel), nil
}

// Decompress decodes one zstd frame into dst[:0].
func (ZstdCodec) Decompress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst[:0], nil
	}

	out, err := gozstd.Decompress(dst[:0], src)
	if err != nil {
		return dst[:0], fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}
