package locality

import (
	"fmt"
	"io"

	"github.com/arloliu/featidx/covering"
	"github.com/arloliu/featidx/interval"
	"github.com/arloliu/featidx/internal/options"
)

// DefaultMaxObjectCells is the default number of cells an area object is indexed under.
const DefaultMaxObjectCells = 4

// BuilderConfig holds the options of a Builder.
type BuilderConfig struct {
	maxObjectCells int
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*BuilderConfig]

// WithMaxObjectCells limits the number of cells one area object is indexed under.
// More cells mean fewer false positives for large areas and a larger index.
func WithMaxObjectCells(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n < 1 {
			return fmt.Errorf("invalid max object cells: %d", n)
		}
		c.maxObjectCells = n

		return nil
	})
}

// Builder indexes objects under the cells of a coverer.
type Builder struct {
	coverer        covering.Coverer
	maxObjectCells int
	intervals      *interval.Builder
	objects        int
}

// NewBuilder creates a builder for coverer. Queries must use the same coverer.
func NewBuilder(coverer covering.Coverer, opts ...BuilderOption) (*Builder, error) {
	if err := coverer.Validate(); err != nil {
		return nil, err
	}
	cfg := &BuilderConfig{maxObjectCells: DefaultMaxObjectCells}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Builder{
		coverer:        coverer,
		maxObjectCells: cfg.maxObjectCells,
		intervals:      interval.NewBuilder(),
	}, nil
}

// Add indexes obj. Each point is indexed under its finest cell; the triangles are
// indexed under at most maxObjectCells cells covering their bounding box.
// Objects may be added in any order.
func (b *Builder) Add(obj *Object) {
	stored := obj.StoredID()
	for _, p := range obj.Points {
		b.intervals.Add(b.coverer.CellID(p), stored)
	}

	if len(obj.Triangles) > 0 {
		area := Object{Triangles: obj.Triangles}
		if bound, ok := area.Bound(); ok {
			for _, cell := range b.coverer.CoverCells(bound, b.maxObjectCells) {
				b.intervals.Add(cell, stored)
			}
		}
	}
	b.objects++
}

// Len returns the number of objects added.
func (b *Builder) Len() int {
	return b.objects
}

// Freeze writes the index to w.
func (b *Builder) Freeze(w io.Writer) (int64, error) {
	return b.intervals.Freeze(w)
}
