package region

import (
	"context"
	"fmt"
	"io"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/internal/logging"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/internal/pool"
	"github.com/arloliu/featidx/section"
)

// SectionFunc writes one section body and returns the number of bytes written.
// Every builder Freeze method has this shape.
type SectionFunc func(w io.Writer) (int64, error)

type pendingSection struct {
	name  string
	write SectionFunc
}

// Writer assembles a region file. Sections are written in the order they were added.
type Writer struct {
	sections []pendingSection
	names    map[string]struct{}
	logger   *logging.Logger
}

// NewWriter creates an empty region writer. Only WithLogger affects a writer.
func NewWriter(opts ...Option) (*Writer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Writer{names: make(map[string]struct{}), logger: cfg.logger}, nil
}

// AddSection registers a section. Names must be unique and at most MaxNameLen bytes.
func (w *Writer) AddSection(name string, write SectionFunc) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidSectionName, name)
	}
	if _, dup := w.names[name]; dup {
		return fmt.Errorf("%w: duplicate %q", errs.ErrInvalidSectionName, name)
	}
	w.names[name] = struct{}{}
	w.sections = append(w.sections, pendingSection{name: name, write: write})

	return nil
}

// WriteTo renders every section and writes the region file to dst.
//
// Section bodies are rendered into pooled buffers first so the directory can
// carry their final offsets.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	bodies := make([]*pool.ByteBuffer, 0, len(w.sections))
	defer func() {
		for _, b := range bodies {
			pool.PutSectionBuffer(b)
		}
	}()

	for _, s := range w.sections {
		buf := pool.GetSectionBuffer()
		bodies = append(bodies, buf)
		if _, err := s.write(buf); err != nil {
			return 0, fmt.Errorf("section %q: %w", s.name, err)
		}
	}

	head := appendHeader(make([]byte, 0, HeaderSize+EntrySize*len(w.sections)), len(w.sections))
	entries := make([]Entry, len(w.sections))
	pos := section.Align8(int64(HeaderSize + EntrySize*len(w.sections)))
	for i, s := range w.sections {
		entries[i] = Entry{Name: s.name, Offset: uint64(pos), Size: uint64(bodies[i].Len())}
		head = appendEntry(head, entries[i])
		pos = section.Align8(pos + int64(bodies[i].Len()))
	}

	n, err := dst.Write(head)
	written := int64(n)
	if err != nil {
		return written, err
	}

	ctx := context.Background()
	for i, body := range bodies {
		pad, err := section.WritePadding(dst, written)
		written += pad
		if err != nil {
			return written, err
		}

		m, err := dst.Write(body.Bytes())
		written += int64(m)
		if err != nil {
			return written, fmt.Errorf("section %q: %w", entries[i].Name, err)
		}
		w.logger.LogSectionWrite(ctx, entries[i].Name, int64(entries[i].Offset), int64(entries[i].Size))
	}

	return written, nil
}
