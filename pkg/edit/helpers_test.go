package edit

import (
	"fmt"
	"testing"

	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
	"github.com/stretchr/testify/require"
)

// state captures everything observable about a model, including entity
// identity, so before/after comparisons catch any drift.
type state struct {
	joints  []*truss.Joint
	members []*truss.Member
	text    []string
}

func capture(m *truss.Model) state {
	var s state
	s.joints = append(s.joints, m.Joints()...)
	s.members = append(s.members, m.Members()...)
	for _, j := range m.Joints() {
		s.text = append(s.text, fmt.Sprintf("J%d %v fixed=%v sel=%v", j.Index(), j.Point(), j.IsFixed(), j.IsSelected()))
	}
	for _, mem := range m.Members() {
		s.text = append(s.text, fmt.Sprintf("M%d %d-%d %+v sel=%v",
			mem.Index(), mem.JointA().Index(), mem.JointB().Index(), mem.Stock(), mem.IsSelected()))
	}
	return s
}

func requireState(t *testing.T, want state, m *truss.Model) {
	t.Helper()
	got := capture(m)
	require.Equal(t, want.text, got.text)
	require.Equal(t, want.joints, got.joints)
	require.Equal(t, want.members, got.members)
	require.NoError(t, m.CheckIndices())
}

func joint(m *truss.Model, x, y float64) *truss.Joint {
	j := truss.NewJoint(geom.Pt(x, y))
	j.SetIndex(m.JointCount())
	m.InsertJoints(j)
	return j
}

func member(m *truss.Model, a, b *truss.Joint) *truss.Member {
	mem := truss.NewMemberAt(m.MemberCount(), a, b, truss.Stock{Size: 5})
	m.InsertMembers(mem)
	return mem
}

// connects reports whether some member of m joins a and b.
func connects(m *truss.Model, a, b *truss.Joint) bool {
	return m.FindMember(a, b) != nil
}

var unlimited = truss.Limits{MaxJoints: 1000, MaxMembers: 1000}
