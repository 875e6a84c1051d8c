package encoding

import "github.com/arloliu/featidx/format"

// BlockCodec encodes and decodes one block of values.
//
// The number of values in a block is not stored by the codec; the sparse map
// derives it from the key count and block size and passes it to DecodeBlock.
type BlockCodec[T any] interface {
	// Encoding identifies the codec in the map header.
	Encoding() format.BlockEncoding

	// AppendBlock appends the encoding of values to dst and returns the extended slice.
	AppendBlock(dst []byte, values []T) []byte

	// DecodeBlock decodes count values from src, appending them to dst[:0].
	// It returns ErrMalformedBlock if src holds fewer than count values.
	DecodeBlock(src []byte, count int, dst []T) ([]T, error)
}

// BlockIndexer is implemented by codecs that can extract a single value from a
// block without materializing the others.
type BlockIndexer[T any] interface {
	// DecodeAt returns the value at index in a block of count values.
	DecodeAt(src []byte, count int, index int) (T, error)
}
