package region

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/internal/logging"
	"github.com/arloliu/featidx/internal/mmap"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/locality"
	"github.com/arloliu/featidx/metadata"
	"github.com/arloliu/featidx/offsettable"
	"github.com/arloliu/featidx/textpool"
	"golang.org/x/sync/errgroup"
)

// Region is an opened region file. Its accessors are safe for concurrent use.
//
// Feature reads hold a read lock on the mapping, so Close waits for them and
// later reads fail with errs.ErrRegionClosed. Structures returned by Heights,
// Metadata, Locality and Section read the mapping directly and must not be used
// concurrently with or after Close.
type Region struct {
	file    *mmap.File
	data    []byte
	entries []Entry
	logger  *logging.Logger

	mu     sync.RWMutex
	closed bool

	heights  *offsettable.Table
	metadata *metadata.Deserializer
	locality *locality.Index
}

// Open maps the region file at path and loads its sections.
//
// Only a file that cannot be mapped, or whose header or directory is damaged,
// fails Open. Damaged sections are logged and reported absent.
func Open(path string, opts ...Option) (*Region, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = f.Advise(mmap.AccessRandom)

	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		f.Close()
		return nil, err
	}
	cfg.logger = cfg.logger.WithRegion(path)

	r, err := newRegion(f.Bytes(), cfg)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("region %s: %w", path, err)
	}
	r.file = f

	return r, nil
}

// FromBytes opens a region held in memory. data must not be modified while the
// region is in use.
func FromBytes(data []byte, opts ...Option) (*Region, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return newRegion(data, cfg)
}

func newRegion(data []byte, cfg *Config) (*Region, error) {
	entries, err := parseDirectory(data)
	if err != nil {
		return nil, err
	}

	r := &Region{data: data, entries: entries, logger: cfg.logger}
	ctx := context.Background()

	// Section failures degrade to a nil accessor and are never returned, so the
	// group only fans the loads out.
	var g errgroup.Group
	g.Go(func() error {
		r.heights = loadSection(ctx, r, SectionHeights, offsettable.Load)
		return nil
	})
	g.Go(func() error {
		r.metadata = loadSection(ctx, r, SectionMetadata, func(b []byte) (*metadata.Deserializer, error) {
			return metadata.Load(b, textpool.WithCacheBytes(cfg.cacheBytes))
		})
		return nil
	})
	g.Go(func() error {
		r.locality = loadSection(ctx, r, SectionLocality, func(b []byte) (*locality.Index, error) {
			return locality.Load(b, cfg.coverer)
		})
		return nil
	})
	_ = g.Wait()

	return r, nil
}

// loadSection loads one optional section. A missing or damaged section yields nil.
func loadSection[T any](ctx context.Context, r *Region, name string, load func([]byte) (*T, error)) *T {
	data, ok := r.Section(name)
	if !ok {
		r.logger.LogSectionAbsent(ctx, name)
		return nil
	}

	v, err := load(data)
	r.logger.LogSectionLoad(ctx, name, len(data), err)
	if err != nil {
		return nil
	}

	return v
}

// Section returns the raw bytes of the named section.
func (r *Region) Section(name string) ([]byte, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			end := e.Offset + e.Size

			return r.data[e.Offset:end:end], true
		}
	}

	return nil, false
}

// Sections returns the section directory in file order.
func (r *Region) Sections() []Entry {
	return slices.Clone(r.entries)
}

// Heights returns the height offset table, or nil if the region has none.
func (r *Region) Heights() *offsettable.Table {
	return r.heights
}

// Metadata returns the feature metadata index, or nil if the region has none.
func (r *Region) Metadata() *metadata.Deserializer {
	return r.metadata
}

// Locality returns the spatial object index, or nil if the region has none.
func (r *Region) Locality() *locality.Index {
	return r.locality
}

// Feature returns a lazy accessor for the auxiliary data of featureID.
func (r *Region) Feature(featureID uint32) *Feature {
	return &Feature{id: featureID, region: r}
}

// Close unmaps the region file after in-flight feature reads finish.
// Materialized features stay valid.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.file == nil {
		return nil
	}

	return r.file.Close()
}

// whileOpen runs fn with the mapping pinned.
func (r *Region) whileOpen(fn func() error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return errs.ErrRegionClosed
	}

	return fn()
}
