// Package covering decomposes rectangles into quadtree cell ranges.
//
// Cells form a quadtree of Depth levels over Bounds. Every cell, at any level,
// has an id equal to its position in a depth-first preorder walk of the tree, so
// the ids of a cell and all of its descendants form the contiguous range
// [id, id+subtreeSize). An object indexed under the id of any cell that overlaps
// a query rectangle is found by scanning:
//
//   - the full descendant range of every cell chosen by the covering, and
//   - the single id of every ancestor of those cells.
//
// Cover returns exactly this set of ranges, sorted and merged.
package covering

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"
)

const (
	// MaxDepth is the deepest supported tree. The id space of a tree of depth
	// MaxDepth fits comfortably into 64 bits.
	MaxDepth = 24
	// DefaultDepth is the depth used by NewCoverer callers that have no better choice.
	DefaultDepth = 16
	// DefaultMaxIntervals bounds the refinement of a query covering.
	DefaultMaxIntervals = 256
)

// WorldBounds is the longitude/latitude extent of the world.
var WorldBounds = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Interval is a half-open range [Lo, Hi) of cell ids.
type Interval struct {
	Lo uint64
	Hi uint64
}

// Cell addresses one quadtree node: its level and column/row at that level.
type Cell struct {
	Level int
	X, Y  uint32
}

// Coverer maps points and rectangles to cell ids of a fixed quadtree.
//
// The zero MaxIntervals value disables the refinement limit.
type Coverer struct {
	Bounds       orb.Bound
	Depth        int
	MaxIntervals int
}

// NewCoverer returns a validated coverer with DefaultMaxIntervals.
func NewCoverer(bounds orb.Bound, depth int) (Coverer, error) {
	c := Coverer{Bounds: bounds, Depth: depth, MaxIntervals: DefaultMaxIntervals}

	return c, c.Validate()
}

// Validate checks the depth and the bounds.
func (c Coverer) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("covering depth %d out of [1, %d]", c.Depth, MaxDepth)
	}
	if !(c.Bounds.Max.X() > c.Bounds.Min.X()) || !(c.Bounds.Max.Y() > c.Bounds.Min.Y()) {
		return fmt.Errorf("covering bounds %v are empty", c.Bounds)
	}

	return nil
}

// subtreeSize returns the number of cells in the subtree of a cell at level.
func (c Coverer) subtreeSize(level int) uint64 {
	return ((uint64(1) << (2 * uint(c.Depth-level+1))) - 1) / 3
}

// CellAt returns the cell at level containing p. Points outside Bounds are clamped.
func (c Coverer) CellAt(p orb.Point, level int) Cell {
	n := float64(uint64(1) << uint(level))
	clamp := func(v, lo, hi float64) uint32 {
		i := math.Floor((v - lo) / (hi - lo) * n)
		if !(i >= 0) {
			return 0
		}
		if i >= n {
			return uint32(n) - 1
		}

		return uint32(i)
	}

	return Cell{
		Level: level,
		X:     clamp(p.X(), c.Bounds.Min.X(), c.Bounds.Max.X()),
		Y:     clamp(p.Y(), c.Bounds.Min.Y(), c.Bounds.Max.Y()),
	}
}

// ID returns the preorder id of cell.
func (c Coverer) ID(cell Cell) uint64 {
	var id uint64
	for k := 1; k <= cell.Level; k++ {
		shift := uint(cell.Level - k)
		q := uint64((cell.X>>shift)&1) | uint64((cell.Y>>shift)&1)<<1
		id += 1 + q*c.subtreeSize(k)
	}

	return id
}

// CellID returns the id of the finest cell containing p.
func (c Coverer) CellID(p orb.Point) uint64 {
	return c.ID(c.CellAt(p, c.Depth))
}

// Bound returns the extent of cell.
func (c Coverer) Bound(cell Cell) orb.Bound {
	n := float64(uint64(1) << uint(cell.Level))
	w := (c.Bounds.Max.X() - c.Bounds.Min.X()) / n
	h := (c.Bounds.Max.Y() - c.Bounds.Min.Y()) / n
	minX := c.Bounds.Min.X() + float64(cell.X)*w
	minY := c.Bounds.Min.Y() + float64(cell.Y)*h

	return orb.Bound{
		Min: orb.Point{minX, minY},
		Max: orb.Point{minX + w, minY + h},
	}
}

// Range returns the ids of cell and all of its descendants.
func (c Coverer) Range(cell Cell) Interval {
	id := c.ID(cell)

	return Interval{Lo: id, Hi: id + c.subtreeSize(cell.Level)}
}

type node struct {
	cell Cell
	id   uint64
}

func (c Coverer) children(n node) [4]node {
	var out [4]node
	for q := 0; q < 4; q++ {
		out[q] = node{
			cell: Cell{
				Level: n.cell.Level + 1,
				X:     n.cell.X<<1 | uint32(q&1),
				Y:     n.cell.Y<<1 | uint32(q>>1),
			},
			id: n.id + 1 + uint64(q)*c.subtreeSize(n.cell.Level+1),
		}
	}

	return out
}

func contains(outer, inner orb.Bound) bool {
	return outer.Min.X() <= inner.Min.X() && outer.Min.Y() <= inner.Min.Y() &&
		outer.Max.X() >= inner.Max.X() && outer.Max.Y() >= inner.Max.Y()
}

// refine walks the tree level by level. Cells fully inside rect, cells at the
// finest level and, once the limit would be exceeded, all remaining partial cells
// are passed to emit. Partial cells that were split are passed to split.
func (c Coverer) refine(rect orb.Bound, limit int, emit, split func(node)) {
	if !rect.Intersects(c.Bounds) {
		return
	}

	emitted := 0
	frontier := []node{{cell: Cell{}, id: 0}}
	for len(frontier) > 0 {
		var next []node
		for _, n := range frontier {
			if n.cell.Level == c.Depth || contains(rect, c.Bound(n.cell)) {
				emit(n)
				emitted++
				continue
			}
			next = append(next, n)
		}

		var children []node
		for _, n := range next {
			for _, child := range c.children(n) {
				if rect.Intersects(c.Bound(child.cell)) {
					children = append(children, child)
				}
			}
		}
		if limit > 0 && emitted+len(children) > limit {
			for _, n := range next {
				emit(n)
			}

			return
		}

		for _, n := range next {
			split(n)
		}
		frontier = children
	}
}

// Cover returns the sorted, merged id ranges that find every object indexed
// under a cell overlapping rect.
func (c Coverer) Cover(rect orb.Bound) []Interval {
	var out []Interval
	c.refine(rect, c.MaxIntervals,
		func(n node) {
			out = append(out, Interval{Lo: n.id, Hi: n.id + c.subtreeSize(n.cell.Level)})
		},
		func(n node) {
			out = append(out, Interval{Lo: n.id, Hi: n.id + 1})
		},
	)

	return merge(out)
}

// CoverCells returns the ids of at most maxCells cells, finest possible, that
// together contain the part of rect inside Bounds. It is the indexing
// counterpart of Cover.
func (c Coverer) CoverCells(rect orb.Bound, maxCells int) []uint64 {
	var ids []uint64
	c.refine(rect, maxCells,
		func(n node) { ids = append(ids, n.id) },
		func(node) {},
	)
	slices.Sort(ids)

	return ids
}

func merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	slices.SortFunc(intervals, func(a, b Interval) int {
		return cmp.Compare(a.Lo, b.Lo)
	})

	out := intervals[:1]
	for _, iv := range intervals[1:] {
		last := &out[len(out)-1]
		if iv.Lo <= last.Hi {
			last.Hi = max(last.Hi, iv.Hi)
			continue
		}
		out = append(out, iv)
	}

	return out
}
