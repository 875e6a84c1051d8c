// Package compress provides the block compression codecs used by text pool blocks.
//
// A text pool groups interned strings into blocks of a configurable raw size and
// compresses every block independently, so fetching one string costs one block
// decode. The codec is chosen at build time and its identifier is recorded in the
// pool header; the loader resolves it again with GetCodec.
//
// # Supported Algorithms
//
//   - format.CompressionNone: blocks are stored raw.
//   - format.CompressionZstd: best ratio, the default for text pools. The pure Go
//     implementation from klauspost/compress is used unless the module is built with
//     the gozstd tag, in which case the cgo binding valyala/gozstd is used. Both
//     produce standard zstd frames and can read each other's output.
//   - format.CompressionS2: klauspost/compress/s2, faster than zstd with a lower ratio.
//   - format.CompressionLZ4: pierrec/lz4 block format. The raw block size is stored
//     as a uvarint prefix because LZ4 blocks do not carry it.
//
// # Buffer Reuse
//
// Both directions take a destination slice. Compress appends to dst; Decompress
// overwrites dst[:0] and grows it as needed. Callers on a hot path keep one scratch
// slice per reader and hand it back on every call:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	scratch, err = codec.Decompress(scratch, block)
//
// All codecs are stateless values and safe for concurrent use. Encoder and decoder
// state is pooled internally.
package compress
