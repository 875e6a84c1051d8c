package section

import (
	"fmt"
	"io"

	"github.com/arloliu/featidx/errs"
)

var zeroPad [Alignment]byte

// Align8 rounds n up to the next multiple of Alignment.
func Align8(n int64) int64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n int64) bool {
	return n&(Alignment-1) == 0
}

// WritePadding writes zero bytes to w until pos reaches the next aligned offset.
// It returns the number of bytes written.
func WritePadding(w io.Writer, pos int64) (int64, error) {
	pad := Align8(pos) - pos
	if pad == 0 {
		return 0, nil
	}
	n, err := w.Write(zeroPad[:pad])

	return int64(n), err
}

// AppendPadding appends zero bytes to dst until its length is aligned.
func AppendPadding(dst []byte) []byte {
	pad := Align8(int64(len(dst))) - int64(len(dst))

	return append(dst, zeroPad[:pad]...)
}

// Window carves [offset, offset+size) out of data.
//
// The returned slice is capped at its own length so a consumer can never read
// past the window into a neighbouring region.
func Window(data []byte, offset, size uint32) ([]byte, error) {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: window [%d, %d) exceeds %d bytes", errs.ErrTruncatedSection, offset, end, len(data))
	}

	return data[offset:end:end], nil
}

// CheckOffset verifies that n fits into a header offset field.
func CheckOffset(n int64) (uint32, error) {
	if n < 0 || n > MaxOffset {
		return 0, fmt.Errorf("%w: %d", errs.ErrOffsetOverflow, n)
	}

	return uint32(n), nil
}

// CheckAligned verifies that a sub-region offset read from a header is aligned
// the way writers place it.
func CheckAligned(name string, offset uint32) error {
	if !IsAligned(int64(offset)) {
		return fmt.Errorf("%w: %s offset %d is not %d-byte aligned", errs.ErrTruncatedSection, name, offset, Alignment)
	}

	return nil
}
