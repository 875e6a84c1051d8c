package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/featidx/format"
	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

var errLZ4Size = errors.New("lz4 decompression failed: invalid raw size prefix")

// LZ4Codec compresses blocks with the LZ4 block format.
//
// Each block is prefixed with its raw size as a uvarint. A block that LZ4 cannot
// shrink is stored raw; its payload length then equals the raw size.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns the lz4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Type returns format.CompressionLZ4.
func (LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress appends the size-prefixed LZ4 block of src to dst.
func (LZ4Codec) Compress(dst, src []byte) ([]byte, error) {
	dst = binary.AppendUvarint(dst, uint64(len(src)))
	if len(src) == 0 {
		return dst, nil
	}

	start := len(dst)
	dst = grow(dst, lz4.CompressBlockBound(len(src)))

	lc, _ := lz4CompressorPool.Get().(*lz4.CompressorHC)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst[start:cap(dst)])
	if err != nil {
		return dst[:start], fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 || n >= len(src) {
		return append(dst[:start], src...), nil
	}

	return dst[:start+n], nil
}

// Decompress decodes a size-prefixed LZ4 block into dst[:0].
func (LZ4Codec) Decompress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst[:0], nil
	}

	rawSize, n := binary.Uvarint(src)
	if n <= 0 || rawSize > MaxBlockSize {
		return dst[:0], errLZ4Size
	}
	src = src[n:]
	size := int(rawSize)
	out := grow(dst[:0], size)[:size]
	if size == 0 {
		return out, nil
	}

	if len(src) == size {
		copy(out, src)
		return out, nil
	}

	written, err := lz4.UncompressBlock(src, out)
	if err != nil {
		return dst[:0], fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if written != size {
		return dst[:0], fmt.Errorf("lz4 decompression failed: got %d bytes, want %d", written, size)
	}

	return out, nil
}
