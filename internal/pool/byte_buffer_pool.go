// Package pool provides pooled byte buffers for the two-phase section writers.
//
// Builders encode a section body into a ByteBuffer, compute the header from the
// buffer length, then copy header and body to the caller's sink. Buffers are
// returned to the pool afterwards so repeated builds do not reallocate.
package pool

import (
	"encoding/binary"
	"io"
	"sync"
)

const (
	SectionBufferDefaultSize  = 1024 * 64        // 64KiB
	SectionBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
	BlockBufferDefaultSize    = 1024 * 16        // 16KiB
	BlockBufferMaxThreshold   = 1024 * 256       // 256KiB
)

// ByteBuffer is an append-only byte buffer that tracks its write position.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Pos returns the current write position, which equals Len.
func (bb *ByteBuffer) Pos() int64 {
	return int64(len(bb.B))
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures at least n more bytes can be appended without reallocating.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := cap(bb.B) / 4
	if growBy < n {
		growBy = n
	}
	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// AppendUvarint appends v as an unsigned varint.
func (bb *ByteBuffer) AppendUvarint(v uint64) {
	bb.B = binary.AppendUvarint(bb.B, v)
}

// AppendUint32 appends v as a little-endian uint32.
func (bb *ByteBuffer) AppendUint32(v uint32) {
	bb.B = binary.LittleEndian.AppendUint32(bb.B, v)
}

// AppendUint64 appends v as a little-endian uint64.
func (bb *ByteBuffer) AppendUint64(v uint64) {
	bb.B = binary.LittleEndian.AppendUint64(bb.B, v)
}

// WriteTo writes the buffered bytes to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers that drops oversized buffers
// instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial size.
// Buffers that grew beyond maxThreshold are discarded on Put; zero disables the limit.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}
	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	sectionPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)
	blockPool   = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)
)

// GetSectionBuffer retrieves a buffer sized for whole section bodies.
func GetSectionBuffer() *ByteBuffer {
	return sectionPool.Get()
}

// PutSectionBuffer returns a section buffer to its pool.
func PutSectionBuffer(bb *ByteBuffer) {
	sectionPool.Put(bb)
}

// GetBlockBuffer retrieves a buffer sized for a single block.
func GetBlockBuffer() *ByteBuffer {
	return blockPool.Get()
}

// PutBlockBuffer returns a block buffer to its pool.
func PutBlockBuffer(bb *ByteBuffer) {
	blockPool.Put(bb)
}
