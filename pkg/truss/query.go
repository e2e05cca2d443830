package truss

import (
	"cmp"
	"math"
	"slices"

	"github.com/chazu/truss/pkg/geom"
)

// FindMember returns the member joining a and b in either direction, or nil.
func (m *Model) FindMember(a, b *Joint) *Member {
	for _, mem := range m.members {
		if mem.Connects(a, b) {
			return mem
		}
	}
	return nil
}

// FindJointAt returns the joint at pt, or nil.
func (m *Model) FindJointAt(pt geom.Point) *Joint {
	for _, j := range m.joints {
		if j.IsAt(pt) {
			return j
		}
	}
	return nil
}

// FindJoint returns the joint nearest pt within radius, or nil. Fixed joints
// are skipped when ignoreFixed is set.
func (m *Model) FindJoint(pt geom.Point, radius float64, ignoreFixed bool) *Joint {
	var best *Joint
	bestSq := radius * radius
	for _, j := range m.joints {
		if ignoreFixed && j.IsFixed() {
			continue
		}
		if d := geom.DistanceSq(j.pt, pt); d <= bestSq {
			best, bestSq = j, d
		}
	}
	return best
}

// FindUnconnectedJoint returns the joint nearest pt within radius that is
// neither from nor already joined to it by a member, or nil.
func (m *Model) FindUnconnectedJoint(pt geom.Point, from *Joint, radius float64) *Joint {
	var best *Joint
	bestSq := radius * radius
	for _, j := range m.joints {
		if j == from || m.FindMember(from, j) != nil {
			continue
		}
		if d := geom.DistanceSq(j.pt, pt); d <= bestSq {
			best, bestSq = j, d
		}
	}
	return best
}

// TranssectedJoints returns the joints lying strictly inside segment ab,
// ordered by distance from a.
func (m *Model) TranssectedJoints(a, b *Joint) []*Joint {
	var hit []*Joint
	for _, j := range m.joints {
		if j != a && j != b && geom.OnSegment(j.pt, a.pt, b.pt) {
			hit = append(hit, j)
		}
	}
	slices.SortFunc(hit, func(x, y *Joint) int {
		return cmp.Compare(geom.DistanceSq(a.pt, x.pt), geom.DistanceSq(a.pt, y.pt))
	})
	return hit
}

// MembersWithJoint returns the members incident to j in index order.
func (m *Model) MembersWithJoint(j *Joint) []*Member {
	var out []*Member
	for _, mem := range m.members {
		if mem.HasJoint(j) {
			out = append(out, mem)
		}
	}
	return out
}

// SelectedMembers returns the selected members in index order.
func (m *Model) SelectedMembers() []*Member {
	var out []*Member
	for _, mem := range m.members {
		if mem.IsSelected() {
			out = append(out, mem)
		}
	}
	return out
}

// SelectedJoint returns the first selected joint, or nil.
func (m *Model) SelectedJoint() *Joint {
	for _, j := range m.joints {
		if j.IsSelected() {
			return j
		}
	}
	return nil
}

// OrphanedBy returns the non-fixed joints that would be left without
// members if the given members were deleted, in index order.
func (m *Model) OrphanedBy(members []*Member) []*Joint {
	doomed := make(map[*Member]bool, len(members))
	for _, mem := range members {
		doomed[mem] = true
	}
	var out []*Joint
	for _, j := range m.joints {
		if j.IsFixed() {
			continue
		}
		touched, onlyDoomed := false, true
		for _, mem := range m.members {
			if mem.HasJoint(j) {
				touched = true
				if !doomed[mem] {
					onlyDoomed = false
					break
				}
			}
		}
		if touched && onlyDoomed {
			out = append(out, j)
		}
	}
	return out
}

// Bounds returns the smallest axis-aligned rectangle containing every joint.
// ok is false for a model without joints.
func (m *Model) Bounds() (lo, hi geom.Point, ok bool) {
	if len(m.joints) == 0 {
		return lo, hi, false
	}
	lo = geom.Pt(math.Inf(1), math.Inf(1))
	hi = geom.Pt(math.Inf(-1), math.Inf(-1))
	for _, j := range m.joints {
		lo = geom.Pt(math.Min(lo.X, j.pt.X), math.Min(lo.Y, j.pt.Y))
		hi = geom.Pt(math.Max(hi.X, j.pt.X), math.Max(hi.Y, j.pt.Y))
	}
	return lo, hi, true
}
