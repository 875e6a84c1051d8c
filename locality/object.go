package locality

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/featidx/errs"
	"github.com/paulmach/orb"
)

// OsmID is the external, stable 64-bit identifier of a locality object.
type OsmID uint64

// ToStoredID returns the on-disk form of id: id rotated left by two bits.
func ToStoredID(id OsmID) uint64 {
	return bits.RotateLeft64(uint64(id), 2)
}

// FromStoredID inverts ToStoredID.
func FromStoredID(stored uint64) OsmID {
	return OsmID(bits.RotateLeft64(stored, -2))
}

// Triangle is three vertices of an area triangulation.
type Triangle [3]orb.Point

// Object is one indexed point or area.
//
// Triangles is a flattened run of vertices; every three consecutive vertices form
// one triangle and no vertex is shared between triangles.
type Object struct {
	ID        OsmID
	Points    []orb.Point
	Triangles []orb.Point
}

// StoredID returns ToStoredID(o.ID).
func (o *Object) StoredID() uint64 {
	return ToStoredID(o.ID)
}

// ForEachPoint calls fn with every point in order.
func (o *Object) ForEachPoint(fn func(orb.Point)) {
	for _, p := range o.Points {
		fn(p)
	}
}

// ForEachTriangle calls fn with every complete triangle in order. A trailing
// partial triple is skipped.
func (o *Object) ForEachTriangle(fn func(a, b, c orb.Point)) {
	for i := 2; i < len(o.Triangles); i += 3 {
		fn(o.Triangles[i-2], o.Triangles[i-1], o.Triangles[i])
	}
}

// PointSeq returns the points as a sequence. It can be ranged over repeatedly.
func (o *Object) PointSeq() iter.Seq[orb.Point] {
	return func(yield func(orb.Point) bool) {
		for _, p := range o.Points {
			if !yield(p) {
				return
			}
		}
	}
}

// TriangleSeq returns the triangles as a sequence. It can be ranged over repeatedly.
func (o *Object) TriangleSeq() iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for i := 2; i < len(o.Triangles); i += 3 {
			if !yield(Triangle{o.Triangles[i-2], o.Triangles[i-1], o.Triangles[i]}) {
				return
			}
		}
	}
}

// Bound returns the bounding box of all points and triangle vertices.
// ok is false for an object without geometry.
func (o *Object) Bound() (b orb.Bound, ok bool) {
	first := true
	extend := func(p orb.Point) {
		if first {
			b = orb.Bound{Min: p, Max: p}
			first = false

			return
		}
		b = b.Extend(p)
	}
	for _, p := range o.Points {
		extend(p)
	}
	for _, p := range o.Triangles {
		extend(p)
	}

	return b, !first
}

const pointSize = 16

// Encode returns the wire form of o.
func Encode(o *Object) []byte {
	return AppendEncode(make([]byte, 0, EncodedSize(o)), o)
}

// EncodedSize returns the length of Encode(o).
func EncodedSize(o *Object) int {
	return 8 + uvarintLen(len(o.Points)) + pointSize*len(o.Points) +
		uvarintLen(len(o.Triangles)) + pointSize*len(o.Triangles)
}

func uvarintLen(n int) int {
	size := 1
	for v := uint64(n); v >= 0x80; v >>= 7 {
		size++
	}

	return size
}

// AppendEncode appends the wire form of o to dst:
//
//	storedID u64 | uvarint nPoints | nPoints x (x f64, y f64) |
//	uvarint nTriangleVertices | nTriangleVertices x (x f64, y f64)
//
// Integers and floats are little-endian; coordinates are stored exactly.
func AppendEncode(dst []byte, o *Object) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, o.StoredID())
	dst = appendPoints(dst, o.Points)
	dst = appendPoints(dst, o.Triangles)

	return dst
}

func appendPoints(dst []byte, points []orb.Point) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(points)))
	for _, p := range points {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(p.X()))
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(p.Y()))
	}

	return dst
}

// Decode parses one object that occupies all of buf.
func Decode(buf []byte) (Object, error) {
	o, n, err := ReadObject(buf)
	if err != nil {
		return Object{}, err
	}
	if n != len(buf) {
		return Object{}, fmt.Errorf("%w: %d trailing bytes", errs.ErrMalformedObject, len(buf)-n)
	}

	return o, nil
}

// ReadObject parses one object from the start of buf and returns the number of
// bytes consumed.
func ReadObject(buf []byte) (Object, int, error) {
	if len(buf) < 8 {
		return Object{}, 0, fmt.Errorf("%w: %d bytes, need an 8-byte id", errs.ErrMalformedObject, len(buf))
	}

	o := Object{ID: FromStoredID(binary.LittleEndian.Uint64(buf))}
	offset := 8

	points, n, err := readPoints(buf[offset:])
	if err != nil {
		return Object{}, 0, fmt.Errorf("points: %w", err)
	}
	o.Points = points
	offset += n

	triangles, n, err := readPoints(buf[offset:])
	if err != nil {
		return Object{}, 0, fmt.Errorf("triangles: %w", err)
	}
	if len(triangles)%3 != 0 {
		return Object{}, 0, fmt.Errorf("%w: %d triangle vertices is not a multiple of 3", errs.ErrMalformedObject, len(triangles))
	}
	o.Triangles = triangles
	offset += n

	return o, offset, nil
}

func readPoints(buf []byte) ([]orb.Point, int, error) {
	count, n := binary.Uvarint(buf)
	if n <= 0 {
		return nil, 0, fmt.Errorf("%w: invalid count", errs.ErrMalformedObject)
	}
	if count > uint64(len(buf)-n)/pointSize {
		return nil, 0, fmt.Errorf("%w: %d points exceed %d bytes", errs.ErrMalformedObject, count, len(buf)-n)
	}
	if count == 0 {
		return nil, n, nil
	}

	points := make([]orb.Point, count)
	for i := range points {
		x := math.Float64frombits(binary.LittleEndian.Uint64(buf[n:]))
		y := math.Float64frombits(binary.LittleEndian.Uint64(buf[n+8:]))
		points[i] = orb.Point{x, y}
		n += pointSize
	}

	return points, n, nil
}
