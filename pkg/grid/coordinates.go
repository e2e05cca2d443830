package grid

import (
	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
	"github.com/deadsy/sdfx/sdf"
)

// Clearances kept around supports, in meters.
const (
	AbutmentClearance = 1.0
	PierClearance     = 1.0
)

// SearchSteps bounds NearbyPoint to this many fine grid spacings, 2 m at
// every density.
const SearchSteps = 8

// Site is the view of the site geometry the coordinate search needs.
type Site interface {
	Extent() sdf.Box2
	IsArch() bool
	HasHighPier() bool
	PierLocation() geom.Point
	LeftBankX() float64
	RightBankX() float64
	GradeLevel() float64
}

// JointLocator finds a joint at an exact location.
type JointLocator interface {
	FindJointAt(pt geom.Point) *truss.Joint
}

// Coordinates snaps world points to grid points that are legal on a site.
type Coordinates struct {
	grid   *Grid
	site   Site
	joints JointLocator
}

// NewCoordinates returns a coordinate system over g and s. joints may be nil,
// in which case occupancy is never checked.
func NewCoordinates(g *Grid, s Site, joints JointLocator) *Coordinates {
	return &Coordinates{grid: g, site: s, joints: joints}
}

// Grid returns the underlying drafting grid.
func (c *Coordinates) Grid() *Grid { return c.grid }

// ShiftToNearestValid returns the grid point nearest src that lies inside the
// site extent, clear of the abutments and banks, and off the high pier.
func (c *Coordinates) ShiftToNearestValid(src geom.Point) (geom.Point, Point) {
	x, y := src.X, src.Y
	ext := c.site.Extent()
	xLeft, xRight := ext.Min.X, ext.Max.X

	tol := 0.5 * FineSize

	if !c.site.IsArch() && y <= tol {
		xLeft += AbutmentClearance
		xRight -= AbutmentClearance
		dy := c.site.GradeLevel() - y
		xLeft = max(xLeft, c.site.LeftBankX()+0.5*dy-0.5)
		xRight = min(xRight, c.site.RightBankX()-0.5*dy+0.5)
	}

	if c.site.HasHighPier() {
		pier := c.site.PierLocation()
		if y <= pier.Y+tol && pier.X-PierClearance <= x && x <= pier.X+PierClearance {
			if x < pier.X {
				x = pier.X - PierClearance
			} else {
				x = pier.X + PierClearance
			}
		}
	}

	clamped := geom.Pt(clamp(x, xLeft, xRight), clamp(y, ext.Min.Y, ext.Max.Y))
	gp := c.grid.WorldToGrid(clamped)
	dst := c.grid.GridToWorld(gp)

	switch {
	case dst.X < xLeft:
		gp.X += c.grid.snapMultiple
		dst = c.grid.GridToWorld(gp)
	case dst.X > xRight:
		gp.X -= c.grid.snapMultiple
		dst = c.grid.GridToWorld(gp)
	}
	return dst, gp
}

// NearbyPoint steps from src in direction (dx, dy), one grid spacing at a
// time, and returns the first valid grid point that differs from src and
// holds no joint. If none is found within SearchSteps fine spacings src is
// returned unchanged.
func (c *Coordinates) NearbyPoint(src geom.Point, dx, dy int) geom.Point {
	step := float64(c.grid.snapMultiple) * FineSize
	tryDx, tryDy := dx, dy
	for range SearchSteps / c.grid.snapMultiple {
		try := geom.Pt(src.X+float64(tryDx)*step, src.Y+float64(tryDy)*step)
		dst, _ := c.ShiftToNearestValid(try)
		if dst != src && (c.joints == nil || c.joints.FindJointAt(dst) == nil) {
			return dst
		}
		tryDx += dx
		tryDy += dy
	}
	return src
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
