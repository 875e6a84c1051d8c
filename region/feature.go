package region

import (
	"github.com/arloliu/featidx/metadata"
)

type loadedFields uint8

const (
	loadedMetadata loadedFields = 1 << iota
	loadedHeight

	loadedAll = loadedMetadata | loadedHeight
)

// Feature reads the auxiliary data of one feature on first access and caches it.
//
// A Feature is owned by one goroutine. Call Materialize before handing it to
// another owner or before closing the region.
type Feature struct {
	id     uint32
	region *Region
	loaded loadedFields

	metadata    metadata.Metadata
	hasMetadata bool
	height      uint32
	hasHeight   bool
}

// ID returns the feature id.
func (f *Feature) ID() uint32 {
	return f.id
}

// Metadata returns the metadata record of the feature. ok is false if the
// feature has none or the region has no metadata section.
func (f *Feature) Metadata() (md *metadata.Metadata, ok bool, err error) {
	if err := f.loadMetadata(); err != nil {
		return nil, false, err
	}

	return &f.metadata, f.hasMetadata, nil
}

// Field returns one metadata value.
func (f *Feature) Field(field metadata.Field) (string, bool, error) {
	if err := f.loadMetadata(); err != nil {
		return "", false, err
	}

	return f.metadata.Get(field), f.metadata.Has(field), nil
}

// HeightOffset returns the offset of the feature's height record.
func (f *Feature) HeightOffset() (uint32, bool, error) {
	if f.loaded&loadedHeight == 0 {
		err := f.region.whileOpen(func() error {
			if t := f.region.heights; t != nil {
				f.height, f.hasHeight = t.Get(f.id)
			}

			return nil
		})
		if err != nil {
			return 0, false, err
		}
		f.loaded |= loadedHeight
	}

	return f.height, f.hasHeight, nil
}

// Materialize loads every field. Afterwards the feature no longer reads from
// the region and stays valid after Close.
func (f *Feature) Materialize() error {
	if err := f.loadMetadata(); err != nil {
		return err
	}
	if _, _, err := f.HeightOffset(); err != nil {
		return err
	}

	return nil
}

// Materialized reports whether every field has been loaded.
func (f *Feature) Materialized() bool {
	return f.loaded == loadedAll
}

func (f *Feature) loadMetadata() error {
	if f.loaded&loadedMetadata != 0 {
		return nil
	}
	err := f.region.whileOpen(func() error {
		d := f.region.metadata
		if d == nil {
			return nil
		}
		ok, err := d.Get(f.id, &f.metadata)
		if err != nil {
			return err
		}
		f.hasMetadata = ok

		return nil
	})
	if err != nil {
		f.metadata.Reset()
		return err
	}
	f.loaded |= loadedMetadata

	return nil
}
