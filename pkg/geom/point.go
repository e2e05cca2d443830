package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Point is a location in world coordinates (meters).
type Point = v2.Vec

// Epsilon is the distance below which two points are the same location.
const Epsilon = 1e-6

// EpsilonSq is Epsilon squared, used to compare squared distances and
// cross products without a square root.
const EpsilonSq = Epsilon * Epsilon

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistanceSq returns the squared distance between a and b.
func DistanceSq(a, b Point) float64 {
	return b.Sub(a).Length2()
}

// Distance returns the distance between a and b.
func Distance(a, b Point) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// Coincident reports whether a and b are closer than Epsilon.
func Coincident(a, b Point) bool {
	return DistanceSq(a, b) < EpsilonSq
}

// Cross returns the z component of (a-o) x (b-o). Positive means o, a, b
// turn counter-clockwise.
func Cross(o, a, b Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// OnSegment reports whether p lies strictly inside segment ab: not at either
// endpoint, within the segment's bounding box, and collinear to within
// EpsilonSq.
func OnSegment(p, a, b Point) bool {
	if Coincident(p, a) || Coincident(p, b) {
		return false
	}
	if p.X < math.Min(a.X, b.X)-Epsilon || p.X > math.Max(a.X, b.X)+Epsilon ||
		p.Y < math.Min(a.Y, b.Y)-Epsilon || p.Y > math.Max(a.Y, b.Y)+Epsilon {
		return false
	}
	return math.Abs(Cross(a, b, p)) < EpsilonSq
}

// Format renders p the way status messages show coordinates.
func Format(p Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
