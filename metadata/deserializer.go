package metadata

import (
	"fmt"

	"github.com/arloliu/featidx/section"
	"github.com/arloliu/featidx/sparse"
	"github.com/arloliu/featidx/textpool"
)

// Deserializer serves metadata lookups from a loaded section. It is safe for
// concurrent use.
type Deserializer struct {
	strings *textpool.Pool
	index   *sparse.Map[[]fieldRef]
}

// Load opens the metadata section at the start of data. opts configure the text pool.
//
// A version mismatch or a region that does not fit into data fails the whole
// section; the caller should then treat the feature metadata as unavailable.
func Load(data []byte, opts ...textpool.LoadOption) (*Deserializer, error) {
	var header section.MetadataHeader
	if err := header.Parse(data); err != nil {
		return nil, err
	}

	if err := section.CheckAligned("metadata strings", header.StringsOffset); err != nil {
		return nil, err
	}
	if err := section.CheckAligned("metadata map", header.MetadataMapOffset); err != nil {
		return nil, err
	}

	stringsData, err := section.Window(data, header.StringsOffset, header.StringsSize)
	if err != nil {
		return nil, fmt.Errorf("metadata strings: %w", err)
	}
	strings, err := textpool.Load(stringsData, opts...)
	if err != nil {
		return nil, fmt.Errorf("metadata strings: %w", err)
	}

	mapData, err := section.Window(data, header.MetadataMapOffset, header.MetadataMapSize)
	if err != nil {
		return nil, fmt.Errorf("metadata map: %w", err)
	}
	index, err := sparse.Load[[]fieldRef](mapData, fieldsCodec{})
	if err != nil {
		return nil, fmt.Errorf("metadata map: %w", err)
	}

	return &Deserializer{strings: strings, index: index}, nil
}

// Get assigns the metadata of featureID to out, field by field. Fields not stored
// for the feature are left untouched, as are tags unknown to this build.
//
// It returns false without error if the feature has no metadata.
func (d *Deserializer) Get(featureID uint32, out *Metadata) (bool, error) {
	refs, ok, err := d.index.Lookup(featureID)
	if err != nil {
		return false, fmt.Errorf("metadata of feature %d: %w", featureID, err)
	}
	if !ok {
		return false, nil
	}

	for _, r := range refs {
		f := Field(r.tag)
		if !f.Known() {
			continue
		}
		value, err := d.strings.FetchString(r.ref)
		if err != nil {
			return false, fmt.Errorf("metadata of feature %d, field %s: %w", featureID, f, err)
		}
		out.Set(f, value)
	}

	return true, nil
}

// Entries returns the raw stored entries of featureID in stored order, including
// repeated fields. Unknown tags are skipped.
func (d *Deserializer) Entries(featureID uint32) ([]Entry, bool, error) {
	refs, ok, err := d.index.Lookup(featureID)
	if err != nil || !ok {
		return nil, false, err
	}

	entries := make([]Entry, 0, len(refs))
	for _, r := range refs {
		f := Field(r.tag)
		if !f.Known() {
			continue
		}
		value, err := d.strings.FetchString(r.ref)
		if err != nil {
			return nil, false, err
		}
		entries = append(entries, Entry{Field: f, Value: value})
	}

	return entries, true, nil
}

// Len returns the number of features with metadata.
func (d *Deserializer) Len() int {
	return d.index.Len()
}
