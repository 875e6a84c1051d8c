package compress

import (
	"fmt"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// MaxBlockSize bounds the decompressed size of a single block. Larger sizes are
// rejected as corrupt input.
const MaxBlockSize = 64 << 20

// Codec compresses and decompresses independent blocks.
type Codec interface {
	// Type returns the identifier stored in the pool header.
	Type() format.CompressionType

	// Compress appends the compressed form of src to dst.
	Compress(dst, src []byte) ([]byte, error)

	// Decompress decodes src into dst[:0], growing dst when its capacity is too small.
	Decompress(dst, src []byte) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", errs.ErrUnknownCompression, compressionType, uint8(compressionType))
}

// Ratio returns compressed/raw, or 0 when raw is empty.
func Ratio(raw, compressed int) float64 {
	if raw == 0 {
		return 0
	}

	return float64(compressed) / float64(raw)
}
