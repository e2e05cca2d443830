package edit

import (
	"github.com/chazu/truss/pkg/truss"
)

// InsertMembersCommand adds one or more members.
type InsertMembersCommand struct {
	model      *truss.Model
	members    []*truss.Member
	maxMembers int
	name       string
}

// NewInsertMemberCommand plans adding mem. If joints lie strictly inside
// mem, the chain of members through them is added instead, skipping links
// that already exist.
func NewInsertMemberCommand(m *truss.Model, mem *truss.Member, lim truss.Limits) *InsertMembersCommand {
	a, b := mem.JointA(), mem.JointB()
	through := m.TranssectedJoints(a, b)
	if len(through) == 0 {
		return newInsertMembers(m, []*truss.Member{mem}, lim, "Insert")
	}
	var pieces []*truss.Member
	for _, p := range chain(a, b, through) {
		if m.FindMember(p[0], p[1]) == nil {
			pieces = append(pieces, truss.NewMember(p[0], p[1], mem.Stock()))
		}
	}
	return newInsertMembers(m, pieces, lim, "Insert")
}

// NewInsertMembersCommand plans adding members as given, without splitting.
// It is used for automatic repairs such as completing the deck.
func NewInsertMembersCommand(m *truss.Model, members []*truss.Member, lim truss.Limits) *InsertMembersCommand {
	return newInsertMembers(m, members, lim, "Auto-insert")
}

func newInsertMembers(m *truss.Model, members []*truss.Member, lim truss.Limits, verb string) *InsertMembersCommand {
	next := m.MemberCount()
	for i, mem := range members {
		mem.SetIndex(next + i)
	}
	return &InsertMembersCommand{
		model:      m,
		members:    members,
		maxMembers: lim.MaxMembers,
		name:       membersPhrase(verb, members),
	}
}

// Members returns the members the command adds.
func (c *InsertMembersCommand) Members() []*truss.Member { return c.members }

func (c *InsertMembersCommand) Check() error {
	want := c.model.MemberCount() + len(c.members)
	if want > c.maxMembers {
		return &CapacityError{Command: c.name, Want: want, Max: c.maxMembers}
	}
	return nil
}

func (c *InsertMembersCommand) Do()          { c.model.InsertMembers(c.members...) }
func (c *InsertMembersCommand) Undo()        { c.model.DeleteMembers(c.members...) }
func (c *InsertMembersCommand) Name() string { return c.name }

// DeleteMembersCommand removes members together with the free joints that
// would be left without any member.
type DeleteMembersCommand struct {
	model    *truss.Model
	members  []*truss.Member
	joints   []*truss.Joint
	selected []bool
	name     string
}

// NewDeleteMembersCommand plans deleting members. It panics if members is
// empty.
func NewDeleteMembersCommand(m *truss.Model, members []*truss.Member) *DeleteMembersCommand {
	if len(members) == 0 {
		panic("edit: delete of empty member set")
	}
	return &DeleteMembersCommand{
		model:   m,
		members: members,
		joints:  m.OrphanedBy(members),
		name:    membersPhrase("Delete", members),
	}
}

// Joints returns the joints removed along with the members.
func (c *DeleteMembersCommand) Joints() []*truss.Joint { return c.joints }

func (c *DeleteMembersCommand) Do() {
	c.selected = c.selected[:0]
	for _, mem := range c.members {
		c.selected = append(c.selected, mem.SetSelected(false))
	}
	for _, j := range c.joints {
		c.selected = append(c.selected, j.SetSelected(false))
	}
	c.model.DeleteMembers(c.members...)
	c.model.DeleteJoints(c.joints...)
}

func (c *DeleteMembersCommand) Undo() {
	c.model.InsertJoints(c.joints...)
	c.model.InsertMembers(c.members...)
	for i, mem := range c.members {
		mem.SetSelected(c.selected[i])
	}
	for i, j := range c.joints {
		j.SetSelected(c.selected[len(c.members)+i])
	}
}

func (c *DeleteMembersCommand) Name() string { return c.name }

// ChangeMembersCommand gives members new stock. Each member's content is
// exchanged with a replacement so the member objects keep their identity.
type ChangeMembersCommand struct {
	model        *truss.Model
	replacements []*truss.Member
	name         string
}

// NewChangeMembersCommand plans applying the non-negative fields of change
// to every member.
func NewChangeMembersCommand(m *truss.Model, members []*truss.Member, change truss.Stock) *ChangeMembersCommand {
	return newChangeMembers(m, members, "Change stock of", func(s truss.Stock) truss.Stock {
		return s.Merge(change)
	})
}

// NewResizeMembersCommand plans moving every member's size by offset within
// the inventory.
func NewResizeMembersCommand(m *truss.Model, inv truss.Inventory, members []*truss.Member, offset int) *ChangeMembersCommand {
	verb := "Increase size of"
	if offset < 0 {
		verb = "Decrease size of"
	}
	return newChangeMembers(m, members, verb, func(s truss.Stock) truss.Stock {
		return inv.Resize(s, offset)
	})
}

func newChangeMembers(m *truss.Model, members []*truss.Member, verb string, f func(truss.Stock) truss.Stock) *ChangeMembersCommand {
	c := &ChangeMembersCommand{model: m, name: membersPhrase(verb, members)}
	for _, mem := range members {
		repl := truss.NewMemberAt(mem.Index(), mem.JointA(), mem.JointB(), f(mem.Stock()))
		c.replacements = append(c.replacements, repl)
	}
	return c
}

// Changes reports whether any member would get different stock.
func (c *ChangeMembersCommand) Changes() bool {
	for _, r := range c.replacements {
		if c.model.Member(r.Index()).Stock() != r.Stock() {
			return true
		}
	}
	return false
}

func (c *ChangeMembersCommand) Do()          { c.model.ExchangeMembers(c.replacements...) }
func (c *ChangeMembersCommand) Undo()        { c.model.ExchangeMembers(c.replacements...) }
func (c *ChangeMembersCommand) Name() string { return c.name }

// FixupCommand splits every member that passes through a joint.
type FixupCommand struct {
	model      *truss.Model
	split      split
	maxMembers int
	name       string
}

// NewFixupCommand plans the repair of m.
func NewFixupCommand(m *truss.Model, lim truss.Limits) *FixupCommand {
	s := planFixup(m)
	return &FixupCommand{
		model:      m,
		split:      s,
		maxMembers: lim.MaxMembers,
		name:       membersPhrase("Auto-fix", s.deleted),
	}
}

// Revised is the number of members the fixup replaces.
func (c *FixupCommand) Revised() int { return len(c.split.deleted) }

func (c *FixupCommand) Check() error {
	return c.split.check(c.model, c.name, c.maxMembers)
}

func (c *FixupCommand) Do()          { c.split.do(c.model) }
func (c *FixupCommand) Undo()        { c.split.undo(c.model) }
func (c *FixupCommand) Name() string { return c.name }
