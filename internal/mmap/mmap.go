// Package mmap maps region files read-only into memory.
//
// The mapped bytes are the immutable image every featidx loader works on.
// Loaders only ever slice into it, so a mapped region is queryable without a
// parse pass and pages are faulted in on first access.
//
// File is safe for concurrent reads. Close is idempotent; callers must make
// sure nothing touches Bytes() after Close returns.
package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

// ErrClosed is returned when reading from a closed mapping.
var ErrClosed = errors.New("mmap: mapping is closed")

// AccessPattern is a paging hint passed to the kernel.
type AccessPattern int

const (
	AccessDefault AccessPattern = iota
	AccessSequential
	AccessRandom
	AccessWillNeed
)

// File is a read-only memory-mapped file.
type File struct {
	data   []byte
	f      *os.File
	closed atomic.Bool
}

// Open maps the file at path into memory.
// An empty file is opened successfully and yields an empty image.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	if size < 0 || int64(int(size)) != size {
		f.Close()
		return nil, errors.New("mmap: invalid file size")
	}

	data, err := osMap(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped image. The slice is invalid after Close.
func (m *File) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}

	return m.data
}

// Len returns the size of the mapping in bytes.
func (m *File) Len() int {
	return len(m.data)
}

// Advise passes an access pattern hint for the whole mapping.
func (m *File) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}

	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt over the mapping.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// Close unmaps the memory and closes the file.
func (m *File) Close() error {
	if m == nil || !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if m.data != nil {
		err = osUnmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}

	return err
}
