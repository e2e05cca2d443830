package edit

import (
	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
	"github.com/deadsy/sdfx/sdf"
)

// Select selects e. A joint is always selected alone. A member replaces the
// selection unless extend is set, in which case it is toggled and any
// selected joint is released. Select reports whether the selection changed.
func (s *Session) Select(e truss.Selectable, extend bool) bool {
	switch e := e.(type) {
	case *truss.Joint:
		changed := s.clearSelection(e)
		if !e.SetSelected(true) {
			changed = true
		}
		s.lastSelected = e
		return changed
	case *truss.Member:
		if !extend {
			changed := s.clearSelection(e)
			if !e.SetSelected(true) {
				changed = true
			}
			s.lastSelected = e
			return changed
		}
		for _, j := range s.model.Joints() {
			j.SetSelected(false)
		}
		if e.SetSelected(!e.IsSelected()) {
			s.forget(e)
		} else {
			s.lastSelected = e
		}
		return true
	}
	return false
}

// SelectMembersIn selects the members with both ends inside box, adding to
// the current selection when extend is set.
func (s *Session) SelectMembersIn(box sdf.Box2, extend bool) bool {
	changed := false
	if !extend {
		changed = s.clearSelection(nil)
	}
	for _, mem := range s.model.Members() {
		if box.Contains(mem.JointA().Point()) && box.Contains(mem.JointB().Point()) {
			if !mem.SetSelected(true) {
				changed = true
				s.lastSelected = mem
			}
		}
	}
	return changed
}

// SelectAllMembers selects every member and releases any selected joint.
func (s *Session) SelectAllMembers() bool {
	changed := false
	for _, j := range s.model.Joints() {
		if j.SetSelected(false) {
			changed = true
		}
	}
	for _, mem := range s.model.Members() {
		if !mem.SetSelected(true) {
			changed = true
		}
	}
	return changed
}

// ClearSelection releases everything.
func (s *Session) ClearSelection() bool {
	return s.clearSelection(nil)
}

// LastSelected returns the most recently selected entity, or nil.
func (s *Session) LastSelected() truss.Selectable {
	return s.lastSelected
}

// clearSelection deselects everything except keep.
func (s *Session) clearSelection(keep truss.Selectable) bool {
	changed := false
	for _, j := range s.model.Joints() {
		if truss.Selectable(j) != keep && j.SetSelected(false) {
			changed = true
		}
	}
	for _, mem := range s.model.Members() {
		if truss.Selectable(mem) != keep && mem.SetSelected(false) {
			changed = true
		}
	}
	if s.lastSelected != keep {
		s.lastSelected = nil
	}
	return changed
}

// forget drops e as the last selected entity.
func (s *Session) forget(e truss.Selectable) {
	if s.lastSelected == e {
		s.lastSelected = nil
	}
}

// SelectionHull returns the convex hull of the selected joint and the ends
// of the selected members, counter-clockwise.
func (s *Session) SelectionHull() []geom.Point {
	var hb geom.HullBuilder
	seen := make(map[*truss.Joint]bool)
	add := func(j *truss.Joint) {
		if !seen[j] {
			seen[j] = true
			hb.Add(j.Point())
		}
	}
	if j := s.model.SelectedJoint(); j != nil {
		add(j)
	}
	for _, mem := range s.model.SelectedMembers() {
		add(mem.JointA())
		add(mem.JointB())
	}
	return hb.Hull(nil)
}
