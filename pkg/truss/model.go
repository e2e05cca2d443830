package truss

import "fmt"

// Model is the ordered joint and member collections of one truss.
//
// The slices returned by Joints and Members are the model's own storage and
// must not be modified by callers; all mutation goes through the Insert,
// Delete and Exchange methods, which edit commands wrap.
type Model struct {
	joints  []*Joint
	members []*Member
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// NewWithJoints returns a model seeded with the given joints, typically the
// fixed supports of a site. Joints are renumbered in order.
func NewWithJoints(joints []*Joint) *Model {
	m := New()
	for i, j := range joints {
		j.SetIndex(i)
	}
	m.joints = append(m.joints, joints...)
	return m
}

func (m *Model) Joints() []*Joint   { return m.joints }
func (m *Model) Members() []*Member { return m.members }
func (m *Model) JointCount() int    { return len(m.joints) }
func (m *Model) MemberCount() int   { return len(m.members) }

// Joint returns the joint at index i.
func (m *Model) Joint(i int) *Joint { return m.joints[i] }

// Member returns the member at index i.
func (m *Model) Member(i int) *Member { return m.members[i] }

// ---------------------------------------------------------------------------
// Ordered-collection primitives
// ---------------------------------------------------------------------------

// InsertJoints inserts joints at the indices they carry.
func (m *Model) InsertJoints(items ...*Joint) {
	m.joints = insertOrdered(m.joints, items)
}

// DeleteJoints removes the given joints.
func (m *Model) DeleteJoints(items ...*Joint) {
	m.joints = deleteOrdered(m.joints, items)
}

// ExchangeJoints swaps the contents of each item with its slot.
func (m *Model) ExchangeJoints(items ...*Joint) {
	exchangeOrdered(m.joints, items)
}

// InsertMembers inserts members at the indices they carry.
func (m *Model) InsertMembers(items ...*Member) {
	m.members = insertOrdered(m.members, items)
}

// DeleteMembers removes the given members.
func (m *Model) DeleteMembers(items ...*Member) {
	m.members = deleteOrdered(m.members, items)
}

// ExchangeMembers swaps the contents of each item with its slot.
func (m *Model) ExchangeMembers(items ...*Member) {
	exchangeOrdered(m.members, items)
}

// CheckIndices returns an error describing the first entity whose index
// disagrees with its position.
func (m *Model) CheckIndices() error {
	for i, j := range m.joints {
		if j.Index() != i {
			return fmt.Errorf("joint at position %d has index %d", i, j.Index())
		}
	}
	for i, mem := range m.members {
		if mem.Index() != i {
			return fmt.Errorf("member at position %d has index %d", i, mem.Index())
		}
	}
	return nil
}
