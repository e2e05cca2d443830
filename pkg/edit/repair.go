package edit

import (
	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
)

// pairSet holds unordered joint pairs.
type pairSet map[[2]*truss.Joint]struct{}

func (s pairSet) add(a, b *truss.Joint) {
	s[[2]*truss.Joint{a, b}] = struct{}{}
	s[[2]*truss.Joint{b, a}] = struct{}{}
}

func (s pairSet) has(a, b *truss.Joint) bool {
	_, ok := s[[2]*truss.Joint{a, b}]
	return ok
}

// split replaces members that pass through a joint with the pieces on either
// side of it. It is planned against the model as it is when the owning
// command is built and replayed by Do and Undo.
type split struct {
	deleted  []*truss.Member
	inserted []*truss.Member
	selected []bool // selection of deleted members when applied
}

// planJointSplit plans the repair for joint j arriving at pt: every member
// not already attached to j whose segment strictly contains pt is replaced
// by the two members meeting at j, skipping pieces that already exist.
func planJointSplit(m *truss.Model, j *truss.Joint, pt geom.Point) split {
	connected := make(pairSet)
	for _, mem := range m.MembersWithJoint(j) {
		connected.add(mem.JointA(), mem.JointB())
	}

	var s split
	var pieces [][2]*truss.Joint
	var stock []truss.Stock
	for _, mem := range m.Members() {
		if mem.HasJoint(j) {
			continue
		}
		a, b := mem.JointA(), mem.JointB()
		if !geom.OnSegment(pt, a.Point(), b.Point()) {
			continue
		}
		s.deleted = append(s.deleted, mem)
		for _, p := range [][2]*truss.Joint{{a, j}, {j, b}} {
			if connected.has(p[0], p[1]) {
				continue
			}
			connected.add(p[0], p[1])
			pieces = append(pieces, p)
			stock = append(stock, mem.Stock())
		}
	}
	s.number(m, pieces, stock)
	return s
}

// planFixup plans the repair of every member that has joints lying strictly
// inside it, replacing it with the chain of members through those joints.
func planFixup(m *truss.Model) split {
	connected := make(pairSet)
	for _, mem := range m.Members() {
		connected.add(mem.JointA(), mem.JointB())
	}

	var s split
	var pieces [][2]*truss.Joint
	var stock []truss.Stock
	for _, mem := range m.Members() {
		a, b := mem.JointA(), mem.JointB()
		through := m.TranssectedJoints(a, b)
		if len(through) == 0 {
			continue
		}
		s.deleted = append(s.deleted, mem)
		for _, p := range chain(a, b, through) {
			if connected.has(p[0], p[1]) {
				continue
			}
			connected.add(p[0], p[1])
			pieces = append(pieces, p)
			stock = append(stock, mem.Stock())
		}
	}
	s.number(m, pieces, stock)
	return s
}

// chain returns the consecutive joint pairs walking from a through each of
// through, in order, to b.
func chain(a, b *truss.Joint, through []*truss.Joint) [][2]*truss.Joint {
	out := make([][2]*truss.Joint, 0, len(through)+1)
	prev := a
	for _, j := range through {
		out = append(out, [2]*truss.Joint{prev, j})
		prev = j
	}
	return append(out, [2]*truss.Joint{prev, b})
}

// number builds the inserted members, indexed after the members that will
// survive the deletion.
func (s *split) number(m *truss.Model, pieces [][2]*truss.Joint, stock []truss.Stock) {
	next := m.MemberCount() - len(s.deleted)
	for i, p := range pieces {
		s.inserted = append(s.inserted, truss.NewMemberAt(next+i, p[0], p[1], stock[i]))
	}
}

// empty reports whether the split changes nothing.
func (s *split) empty() bool {
	return len(s.deleted) == 0 && len(s.inserted) == 0
}

// check rejects the split when it would push the model past maxMembers.
func (s *split) check(m *truss.Model, name string, maxMembers int) error {
	want := m.MemberCount() + len(s.inserted) - len(s.deleted)
	if want > maxMembers {
		return &CapacityError{Command: name, Want: want, Max: maxMembers}
	}
	return nil
}

func (s *split) do(m *truss.Model) {
	s.selected = s.selected[:0]
	for _, mem := range s.deleted {
		s.selected = append(s.selected, mem.SetSelected(false))
	}
	m.DeleteMembers(s.deleted...)
	m.InsertMembers(s.inserted...)
}

func (s *split) undo(m *truss.Model) {
	m.DeleteMembers(s.inserted...)
	m.InsertMembers(s.deleted...)
	for i, mem := range s.deleted {
		mem.SetSelected(s.selected[i])
	}
}
