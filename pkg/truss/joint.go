package truss

import (
	"fmt"

	"github.com/chazu/truss/pkg/geom"
)

// Joint is a truss node. Fixed joints are the supports prescribed by the
// site; they cannot be moved or deleted.
type Joint struct {
	index    int
	selected bool
	fixed    bool
	pt       geom.Point
}

// NewJoint returns an unplaced, non-fixed joint at pt.
func NewJoint(pt geom.Point) *Joint {
	return &Joint{index: -1, pt: pt}
}

// NewFixedJoint returns a fixed joint at pt carrying index i.
func NewFixedJoint(i int, pt geom.Point) *Joint {
	return &Joint{index: i, fixed: true, pt: pt}
}

func (j *Joint) Index() int       { return j.index }
func (j *Joint) SetIndex(i int)   { j.index = i }
func (j *Joint) IsSelected() bool { return j.selected }
func (j *Joint) IsFixed() bool    { return j.fixed }

// Point returns the joint location.
func (j *Joint) Point() geom.Point { return j.pt }

// Number is the 1-based label shown to users.
func (j *Joint) Number() int { return j.index + 1 }

func (j *Joint) SetSelected(selected bool) bool {
	prev := j.selected
	j.selected = selected
	return prev
}

// SwapContents exchanges locations with other.
func (j *Joint) SwapContents(other *Joint) {
	j.pt, other.pt = other.pt, j.pt
}

// IsAt reports whether the joint is at pt.
func (j *Joint) IsAt(pt geom.Point) bool {
	return geom.Coincident(j.pt, pt)
}

func (j *Joint) String() string {
	return fmt.Sprintf("joint %d %s", j.Number(), geom.Format(j.pt))
}
