package region

import (
	"fmt"

	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/format"
)

// Well-known section names.
const (
	SectionHeights  = "heights"
	SectionMetadata = "metadata"
	SectionLocality = "locality"
)

const (
	// Magic identifies a region file.
	Magic = "FIDX"
	// HeaderSize is the size of the file header.
	HeaderSize = 16
	// EntrySize is the size of one directory entry.
	EntrySize = 32
	// MaxNameLen is the longest section name a directory entry can hold.
	MaxNameLen = 16
)

// Entry locates one section inside a region file.
type Entry struct {
	Name   string
	Offset uint64
	Size   uint64
}

func validName(name string) bool {
	return name != "" && len(name) <= MaxNameLen
}

func appendHeader(dst []byte, count int) []byte {
	engine := endian.Section()
	dst = append(dst, Magic...)
	dst = append(dst, byte(format.Latest), 0, 0, 0)
	dst = engine.AppendUint32(dst, uint32(count))
	dst = engine.AppendUint32(dst, 0)

	return dst
}

func appendEntry(dst []byte, e Entry) []byte {
	var name [MaxNameLen]byte
	copy(name[:], e.Name)

	engine := endian.Section()
	dst = append(dst, name[:]...)
	dst = engine.AppendUint64(dst, e.Offset)
	dst = engine.AppendUint64(dst, e.Size)

	return dst
}

// parseDirectory validates the file header and returns the section directory.
// Every entry is checked to lie inside data.
func parseDirectory(data []byte) ([]Entry, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: region file of %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	if string(data[:4]) != Magic {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[:4])
	}
	if v := format.Version(data[4]); v != format.Latest {
		return nil, fmt.Errorf("%w: region version %s, want %s", errs.ErrVersionMismatch, v, format.Latest)
	}

	engine := endian.Section()
	count := uint64(engine.Uint32(data[8:12]))
	if count > uint64(len(data)-HeaderSize)/EntrySize {
		return nil, fmt.Errorf("%w: directory of %d sections exceeds %d bytes", errs.ErrTruncatedSection, count, len(data))
	}

	entries := make([]Entry, 0, count)
	for i := range int(count) {
		raw := data[HeaderSize+i*EntrySize:]
		name := raw[:MaxNameLen]
		for len(name) > 0 && name[len(name)-1] == 0 {
			name = name[:len(name)-1]
		}
		e := Entry{
			Name:   string(name),
			Offset: engine.Uint64(raw[16:24]),
			Size:   engine.Uint64(raw[24:32]),
		}
		if e.Offset > uint64(len(data)) || e.Size > uint64(len(data))-e.Offset {
			return nil, fmt.Errorf("%w: section %q [%d, +%d) exceeds %d bytes",
				errs.ErrTruncatedSection, e.Name, e.Offset, e.Size, len(data))
		}
		entries = append(entries, e)
	}

	return entries, nil
}
