// Package site derives the fixed geometry of a bridge site from a handful of
// design parameters: the span, the banks, the grade line, optional arch
// abutments and an optional intermediate pier. Editing code consults it for
// the legal drawing area and the prescribed support joints.
package site

import (
	"fmt"

	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
	"github.com/deadsy/sdfx/sdf"
)

// Site geometry constants, in meters.
const (
	PanelSize         = 4.0
	GapDepth          = 24.0
	MinOverhead       = 8.0
	WearSurfaceHeight = 0.8
	HalfNaturalGap    = 22.0
)

// Params are the design parameters a site is built from.
type Params struct {
	Panels         int     `json:"panels" yaml:"panels" validate:"min=5,max=11"`
	UnderClearance float64 `json:"underClearance" yaml:"under_clearance" validate:"gte=0,lte=24"`
	OverClearance  float64 `json:"overClearance" yaml:"over_clearance" validate:"gte=0,lte=32"`
	Arch           bool    `json:"arch" yaml:"arch"`
	// PierPanel is the deck joint above the pier, or -1 for no pier.
	PierPanel int  `json:"pierPanel" yaml:"pier_panel" validate:"gte=-1"`
	HighPier  bool `json:"highPier" yaml:"high_pier"`
}

// DefaultParams is an 11-panel simple span with no pier.
func DefaultParams() Params {
	return Params{Panels: 11, UnderClearance: 24, OverClearance: 8, PierPanel: -1}
}

// Conditions is the derived site geometry. It is immutable once built.
type Conditions struct {
	params        Params
	deckElevation float64
	extent        sdf.Box2
	leftBankX     float64
	rightBankX    float64
	gradeLevel    float64
	pier          geom.Point
	prescribed    []geom.Point
}

// New derives site conditions from p.
func New(p Params) (*Conditions, error) {
	if p.Panels < 1 {
		return nil, fmt.Errorf("site: need at least one panel, got %d", p.Panels)
	}
	if p.PierPanel >= p.Panels || p.PierPanel == 0 {
		return nil, fmt.Errorf("site: pier panel %d outside 1..%d", p.PierPanel, p.Panels-1)
	}
	if p.HighPier && p.PierPanel < 0 {
		return nil, fmt.Errorf("site: high pier requires a pier panel")
	}

	c := &Conditions{params: p}
	span := float64(p.Panels) * PanelSize
	c.deckElevation = PanelSize * float64(p.Panels-5)
	if p.Arch {
		c.deckElevation += p.UnderClearance
	}
	if c.deckElevation < 0 || c.deckElevation > GapDepth {
		return nil, fmt.Errorf("site: deck elevation %.1f outside 0..%.0f", c.deckElevation, GapDepth)
	}
	if c.deckElevation+p.OverClearance > GapDepth+MinOverhead {
		return nil, fmt.Errorf("site: over clearance %.1f too high for deck elevation %.1f", p.OverClearance, c.deckElevation)
	}

	c.extent = sdf.Box2{
		Min: geom.Pt(0, -p.UnderClearance),
		Max: geom.Pt(span, p.OverClearance),
	}
	c.gradeLevel = GapDepth - c.deckElevation + WearSurfaceHeight
	halfCut := 0.5 * span
	c.leftBankX = halfCut - HalfNaturalGap
	c.rightBankX = halfCut + HalfNaturalGap

	for i := 0; i <= p.Panels; i++ {
		c.prescribed = append(c.prescribed, geom.Pt(float64(i)*PanelSize, 0))
	}
	if p.PierPanel > 0 {
		x := float64(p.PierPanel) * PanelSize
		if p.HighPier {
			c.pier = geom.Pt(x, 0)
		} else {
			c.pier = geom.Pt(x, -p.UnderClearance)
			c.prescribed = append(c.prescribed, c.pier)
		}
	}
	if p.Arch {
		c.prescribed = append(c.prescribed, geom.Pt(0, -p.UnderClearance), geom.Pt(span, -p.UnderClearance))
	}
	return c, nil
}

// MustNew is New for parameters known to be valid.
func MustNew(p Params) *Conditions {
	c, err := New(p)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Conditions) Params() Params         { return c.params }
func (c *Conditions) Panels() int            { return c.params.Panels }
func (c *Conditions) IsArch() bool           { return c.params.Arch }
func (c *Conditions) HasPier() bool          { return c.params.PierPanel > 0 }
func (c *Conditions) HasHighPier() bool      { return c.params.HighPier && c.HasPier() }
func (c *Conditions) DeckElevation() float64 { return c.deckElevation }
func (c *Conditions) LeftBankX() float64     { return c.leftBankX }
func (c *Conditions) RightBankX() float64    { return c.rightBankX }
func (c *Conditions) GradeLevel() float64    { return c.gradeLevel }
func (c *Conditions) SpanLength() float64    { return c.extent.Max.X - c.extent.Min.X }

// Extent is the legal drawing area: the deck span horizontally, from the
// under clearance to the over clearance vertically.
func (c *Conditions) Extent() sdf.Box2 { return c.extent }

// PierLocation is the top of the pier. Only meaningful when HasPier.
func (c *Conditions) PierLocation() geom.Point { return c.pier }

// PrescribedJointCount is the number of fixed support joints.
func (c *Conditions) PrescribedJointCount() int { return len(c.prescribed) }

// PrescribedJoints returns fresh fixed joints for the site supports: one per
// deck panel point, then the low pier base, then the arch abutments.
func (c *Conditions) PrescribedJoints() []*truss.Joint {
	out := make([]*truss.Joint, len(c.prescribed))
	for i, pt := range c.prescribed {
		out[i] = truss.NewFixedJoint(i, pt)
	}
	return out
}

// CrossesPier reports whether a member from a to b would pass below the top
// of a high pier.
func (c *Conditions) CrossesPier(a, b geom.Point) bool {
	if !c.HasHighPier() {
		return false
	}
	p := c.pier
	if (a.X < p.X && b.X > p.X) || (b.X < p.X && a.X > p.X) {
		y := a.Y + (p.X-a.X)*(b.Y-a.Y)/(b.X-a.X)
		return y < p.Y-geom.Epsilon
	}
	return false
}
