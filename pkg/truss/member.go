package truss

import (
	"fmt"

	"github.com/chazu/truss/pkg/geom"
)

// Stock selects a member's material, cross-section and size from an
// Inventory. A negative field in a Stock used as a change request means
// "keep the current value".
type Stock struct {
	Material int `json:"material" yaml:"material"`
	Section  int `json:"section" yaml:"section"`
	Size     int `json:"size" yaml:"size"`
}

// Keep is the change request that leaves every stock field alone.
var Keep = Stock{Material: -1, Section: -1, Size: -1}

// Merge returns s with every non-negative field of change applied.
func (s Stock) Merge(change Stock) Stock {
	if change.Material >= 0 {
		s.Material = change.Material
	}
	if change.Section >= 0 {
		s.Section = change.Section
	}
	if change.Size >= 0 {
		s.Size = change.Size
	}
	return s
}

// Member is a straight bar between two distinct joints.
type Member struct {
	index    int
	selected bool
	a, b     *Joint
	stock    Stock
}

// NewMember returns an unplaced member from a to b.
func NewMember(a, b *Joint, stock Stock) *Member {
	return &Member{index: -1, a: a, b: b, stock: stock}
}

// NewMemberAt returns a member carrying index i.
func NewMemberAt(i int, a, b *Joint, stock Stock) *Member {
	return &Member{index: i, a: a, b: b, stock: stock}
}

func (m *Member) Index() int       { return m.index }
func (m *Member) SetIndex(i int)   { m.index = i }
func (m *Member) IsSelected() bool { return m.selected }
func (m *Member) JointA() *Joint   { return m.a }
func (m *Member) JointB() *Joint   { return m.b }
func (m *Member) Stock() Stock     { return m.stock }

// Number is the 1-based label shown to users.
func (m *Member) Number() int { return m.index + 1 }

func (m *Member) SetSelected(selected bool) bool {
	prev := m.selected
	m.selected = selected
	return prev
}

// SwapContents exchanges endpoints and stock with other.
func (m *Member) SwapContents(other *Member) {
	m.a, other.a = other.a, m.a
	m.b, other.b = other.b, m.b
	m.stock, other.stock = other.stock, m.stock
}

// HasJoint reports whether j is an endpoint.
func (m *Member) HasJoint(j *Joint) bool {
	return m.a == j || m.b == j
}

// Connects reports whether the member joins a and b in either direction.
func (m *Member) Connects(a, b *Joint) bool {
	return (m.a == a && m.b == b) || (m.a == b && m.b == a)
}

// Other returns the endpoint opposite j, or nil if j is not an endpoint.
func (m *Member) Other(j *Joint) *Joint {
	switch j {
	case m.a:
		return m.b
	case m.b:
		return m.a
	}
	return nil
}

// Length returns the distance between the endpoints.
func (m *Member) Length() float64 {
	return geom.Distance(m.a.pt, m.b.pt)
}

func (m *Member) String() string {
	return fmt.Sprintf("member %d (%d-%d)", m.Number(), m.a.Number(), m.b.Number())
}
