package locality

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/arloliu/featidx/covering"
	"github.com/arloliu/featidx/interval"
	"github.com/paulmach/orb"
)

// IntervalIndex is the read side of the interval index: it calls fn with every
// value whose key lies in [lo, hi).
type IntervalIndex interface {
	ForEach(fn func(value uint64), lo, hi uint64)
}

// CoverFunc decomposes a rectangle into cell id ranges.
type CoverFunc func(rect orb.Bound) []covering.Interval

// Index answers rectangle queries. It is safe for concurrent use when the
// interval index is.
type Index struct {
	intervals IntervalIndex
	cover     CoverFunc
}

// NewIndex combines an interval index with the covering it was built for.
func NewIndex(intervals IntervalIndex, cover CoverFunc) *Index {
	return &Index{intervals: intervals, cover: cover}
}

// Load opens an interval index section built by Builder with the same coverer.
func Load(data []byte, coverer covering.Coverer) (*Index, error) {
	intervals, err := interval.Load(data)
	if err != nil {
		return nil, err
	}

	return NewIndex(intervals, coverer.Cover), nil
}

// ForEachInRect calls fn with the id of every object indexed under a cell
// overlapping rect. The same id may be reported more than once.
func (ix *Index) ForEachInRect(rect orb.Bound, fn func(OsmID)) {
	for _, iv := range ix.cover(rect) {
		ix.intervals.ForEach(func(stored uint64) {
			fn(FromStoredID(stored))
		}, iv.Lo, iv.Hi)
	}
}

// InRect returns ForEachInRect as a sequence.
func (ix *Index) InRect(rect orb.Bound) iter.Seq[OsmID] {
	return func(yield func(OsmID) bool) {
		done := false
		for _, iv := range ix.cover(rect) {
			ix.intervals.ForEach(func(stored uint64) {
				if !done && !yield(FromStoredID(stored)) {
					done = true
				}
			}, iv.Lo, iv.Hi)
			if done {
				return
			}
		}
	}
}

// UniqueInRect returns the distinct ids reported by ForEachInRect in increasing order.
func (ix *Index) UniqueInRect(rect orb.Bound) []OsmID {
	seen := roaring64.NewBitmap()
	ix.ForEachInRect(rect, func(id OsmID) {
		seen.Add(uint64(id))
	})

	values := seen.ToArray()
	ids := make([]OsmID, len(values))
	for i, v := range values {
		ids[i] = OsmID(v)
	}

	return ids
}
