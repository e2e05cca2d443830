// Package grid implements the drafting grid joints snap to and the
// site-constrained coordinate search built on it.
//
// Grid coordinates are integers counting fine grid units (FineSize meters).
// A coarser density only changes the snap multiple: coarse grid points are
// the fine points whose coordinates are multiples of 4.
package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/truss/pkg/geom"
)

// FineSize is the spacing of the finest grid in meters.
const FineSize = 0.25

// MaxSnapMultiple is the snap multiple of the coarsest grid.
const MaxSnapMultiple = 4

// Density selects one of the supported grids.
type Density int

const (
	Coarse Density = iota
	Medium
	Fine
)

var snapMultiples = [...]int{Coarse: 4, Medium: 2, Fine: 1}

func (d Density) String() string {
	switch d {
	case Coarse:
		return "coarse"
	case Medium:
		return "medium"
	case Fine:
		return "fine"
	default:
		return fmt.Sprintf("Density(%d)", int(d))
	}
}

// ParseDensity converts a density name to a Density.
func ParseDensity(s string) (Density, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coarse":
		return Coarse, nil
	case "medium":
		return Medium, nil
	case "fine":
		return Fine, nil
	}
	return 0, fmt.Errorf("grid: unknown density %q", s)
}

// ToDensity returns the density with the given snap multiple, or -1.
func ToDensity(snapMultiple int) Density {
	for d, m := range snapMultiples {
		if m == snapMultiple {
			return Density(d)
		}
	}
	return -1
}

// Point is a location in grid coordinates.
type Point struct {
	X, Y int
}

// Grid is a drafting grid at one of the supported densities.
type Grid struct {
	snapMultiple int
}

// New returns a grid of density d.
func New(d Density) *Grid {
	g := &Grid{}
	g.SetDensity(d)
	return g
}

// SetDensity changes the grid density.
func (g *Grid) SetDensity(d Density) {
	g.snapMultiple = snapMultiples[d]
}

func (g *Grid) Density() Density  { return ToDensity(g.snapMultiple) }
func (g *Grid) SnapMultiple() int { return g.snapMultiple }

// Size is the distance between grid points in meters.
func (g *Grid) Size() float64 {
	return FineSize * float64(g.snapMultiple)
}

// IsFiner reports whether density d is finer than the current grid.
func (g *Grid) IsFiner(d Density) bool {
	return snapMultiples[d] < g.snapMultiple
}

// WorldToGridX returns the grid x-coordinate nearest world x.
func (g *Grid) WorldToGridX(x float64) int {
	return g.snapMultiple * roundHalfUp(x/(FineSize*float64(g.snapMultiple)))
}

// WorldToGridY returns the grid y-coordinate nearest world y.
func (g *Grid) WorldToGridY(y float64) int {
	return g.snapMultiple * roundHalfUp(y/(FineSize*float64(g.snapMultiple)))
}

// WorldToGrid returns the grid point nearest p.
func (g *Grid) WorldToGrid(p geom.Point) Point {
	return Point{X: g.WorldToGridX(p.X), Y: g.WorldToGridY(p.Y)}
}

// GridToWorld returns the world location of grid point p.
func (g *Grid) GridToWorld(p Point) geom.Point {
	return geom.Pt(float64(p.X)*FineSize, float64(p.Y)*FineSize)
}

// Snap returns the grid point nearest p in world coordinates.
func (g *Grid) Snap(p geom.Point) geom.Point {
	return g.GridToWorld(g.WorldToGrid(p))
}

// SnapMultipleOf returns the coarsest snap multiple whose grid contains
// world coordinate c, capped at MaxSnapMultiple.
func SnapMultipleOf(c float64) int {
	fine := roundHalfUp(c / FineSize)
	lsb := fine & -fine
	if lsb == 0 || lsb > MaxSnapMultiple {
		return MaxSnapMultiple
	}
	return lsb
}

// MinSnapMultiple returns the finest snap multiple needed to hold every
// point, which is the snap multiple the grid must at least have for all of
// them to lie on grid points.
func MinSnapMultiple(pts []geom.Point) int {
	m := MaxSnapMultiple
	for _, p := range pts {
		m = min(m, SnapMultipleOf(p.X), SnapMultipleOf(p.Y))
	}
	return m
}

// GraduationLevel is 0 for grid coordinates only on the fine grid, 1 for
// those also on the medium grid and 2 for coarse grid coordinates. Rulers
// use it to choose tick heights.
func GraduationLevel(c int) int {
	mask, level := 0x3, 2
	for mask&c != 0 {
		mask >>= 1
		level--
	}
	return level
}

// roundHalfUp rounds to the nearest integer with halves going up, so
// negative coordinates snap the same way positive ones do.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
