package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/featidx/errs"
)

// AppendBytes appends b prefixed with its length as a uvarint.
//
// Unlike fixed one-byte length prefixes there is no upper bound on the string
// length; metadata values such as opening hours or URLs routinely exceed 255 bytes.
func AppendBytes(dst []byte, b []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(b)))

	return append(dst, b...)
}

// ReadBytes reads one length-prefixed string from src.
// The returned slice aliases src. It also returns the number of bytes consumed.
func ReadBytes(src []byte) ([]byte, int, error) {
	length, n := binary.Uvarint(src)
	if n <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid string length", errs.ErrMalformedBlock)
	}
	if length > uint64(len(src)-n) {
		return nil, 0, fmt.Errorf("%w: string of %d bytes exceeds block", errs.ErrMalformedBlock, length)
	}
	end := n + int(length)

	return src[n:end:end], end, nil
}

// SizeBytes returns the encoded size of a string of length n.
func SizeBytes(n int) int {
	size := 1
	for v := uint64(n); v >= 0x80; v >>= 7 {
		size++
	}

	return size + n
}
