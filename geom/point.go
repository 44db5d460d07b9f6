package geom

import (
	"errors"
	"math"
)

// ErrEmpty is returned by Mean when called with no points.
var ErrEmpty = errors.New("geom: mean of empty point set")

// Point is an ordered pair of real coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the origin.
var Zero = Point{}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p multiplied by f.
// Division by a count is expressed as p.Scale(1/float64(count)).
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Equal reports whether p and q have identical coordinates.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Pair returns the coordinates as a fixed-size array.
func (p Point) Pair() [2]float64 {
	return [2]float64{p.X, p.Y}
}

// FromPair builds a Point from a coordinate array.
func FromPair(v [2]float64) Point {
	return Point{X: v[0], Y: v[1]}
}

// Distance returns the Euclidean distance between a and b. It is zero only
// when a and b are equal, even for points too close for SquaredDistance to
// represent.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Mean returns the arithmetic mean of points.
// Returns ErrEmpty if points is empty.
func Mean(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, ErrEmpty
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points))), nil
}

// Bounds returns the lower-left and upper-right corners of the smallest
// axis-aligned box containing all points. Both are Zero for an empty slice.
func Bounds(points []Point) (lo, hi Point) {
	if len(points) == 0 {
		return Zero, Zero
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
