// Package featidx provides compact, memory-mappable indexes that attach auxiliary
// data to the numeric feature ids of an offline map region.
//
// A region carries up to three auxiliary sections:
//
//   - heights: feature id to offset of its height record (offsettable)
//   - metadata: feature id to a small record of tagged strings (metadata)
//   - locality: rectangle queries over point and area objects (locality)
//
// Every section is written once by a single-threaded builder and then served
// straight out of a read-only byte image by any number of concurrent readers.
//
// # Basic Usage
//
// Building a region:
//
//	heights, _ := featidx.NewHeightBuilder()
//	heights.Put(10, 100)
//
//	meta, _ := featidx.NewMetadataBuilder()
//	var md metadata.Metadata
//	md.Set(metadata.FieldCuisine, "italian")
//	meta.Put(10, md)
//
//	w, _ := featidx.NewRegionWriter()
//	w.AddSection(region.SectionHeights, heights.Freeze)
//	w.AddSection(region.SectionMetadata, meta.Freeze)
//	w.WriteTo(file)
//
// Reading it back:
//
//	r, _ := featidx.OpenRegion("berlin.fidx")
//	defer r.Close()
//
//	f := r.Feature(10)
//	cuisine, ok, err := f.Field(metadata.FieldCuisine)
//
// # Package Structure
//
// This package provides convenient top-level wrappers with recommended defaults.
// For fine-grained control, use the sub-packages directly.
package featidx

import (
	"github.com/arloliu/featidx/covering"
	"github.com/arloliu/featidx/locality"
	"github.com/arloliu/featidx/metadata"
	"github.com/arloliu/featidx/offsettable"
	"github.com/arloliu/featidx/region"
	"github.com/arloliu/featidx/sparse"
	"github.com/arloliu/featidx/textpool"
)

// DefaultCoverer returns the covering used by NewLocalityBuilder and
// OpenRegion: the whole longitude/latitude plane at covering.DefaultDepth.
func DefaultCoverer() covering.Coverer {
	return covering.Coverer{
		Bounds:       covering.WorldBounds,
		Depth:        covering.DefaultDepth,
		MaxIntervals: covering.DefaultMaxIntervals,
	}
}

// NewHeightBuilder creates a builder for the heights section.
//
// Available options:
//   - sparse.WithBlockSize(n): entries per block, default sparse.DefaultBlockSize
func NewHeightBuilder(opts ...sparse.BuilderOption) (*offsettable.Builder, error) {
	return offsettable.NewBuilder(opts...)
}

// LoadHeights opens a heights section image.
func LoadHeights(data []byte) (*offsettable.Table, error) {
	return offsettable.Load(data)
}

// NewMetadataBuilder creates a builder for the metadata section.
//
// The defaults are sparse.DefaultBlockSize records per block and zstd
// compressed text pool blocks of textpool.DefaultBlockBytes.
//
// Available options:
//   - metadata.WithBlockSize(n)
//   - metadata.WithPoolBlockBytes(n)
//   - metadata.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//
// Example:
//
//	b, err := featidx.NewMetadataBuilder(metadata.WithCompression(format.CompressionS2))
func NewMetadataBuilder(opts ...metadata.BuilderOption) (*metadata.Builder, error) {
	return metadata.NewBuilder(opts...)
}

// LoadMetadata opens a metadata section image.
//
// Available options:
//   - textpool.WithCacheBytes(n): decoded block cache budget, 0 disables it
func LoadMetadata(data []byte, opts ...textpool.LoadOption) (*metadata.Deserializer, error) {
	return metadata.Load(data, opts...)
}

// NewLocalityBuilder creates a locality builder over DefaultCoverer.
//
// Available options:
//   - locality.WithMaxObjectCells(n): cells per area object, default locality.DefaultMaxObjectCells
func NewLocalityBuilder(opts ...locality.BuilderOption) (*locality.Builder, error) {
	return locality.NewBuilder(DefaultCoverer(), opts...)
}

// LoadLocality opens a locality section built by NewLocalityBuilder.
func LoadLocality(data []byte) (*locality.Index, error) {
	return locality.Load(data, DefaultCoverer())
}

// NewRegionWriter creates an empty region file writer.
func NewRegionWriter(opts ...region.Option) (*region.Writer, error) {
	return region.NewWriter(opts...)
}

// OpenRegion maps the region file at path and loads its sections.
//
// Sections that are missing or damaged are reported as nil by the region
// accessors; only a damaged file header fails OpenRegion.
//
// Available options:
//   - region.WithLogger(l): log section load outcomes
//   - region.WithCacheBytes(n): metadata text pool cache budget
//   - region.WithCoverer(c): covering of the locality section, default DefaultCoverer()
func OpenRegion(path string, opts ...region.Option) (*region.Region, error) {
	return region.Open(path, opts...)
}
