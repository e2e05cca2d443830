package edit

import (
	"fmt"

	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
)

// InsertJointCommand adds a joint and splits any member it lands on.
type InsertJointCommand struct {
	model      *truss.Model
	joint      *truss.Joint
	split      split
	maxMembers int
	name       string
}

// NewInsertJointCommand plans the insertion of j as the last joint of m.
func NewInsertJointCommand(m *truss.Model, j *truss.Joint, lim truss.Limits) *InsertJointCommand {
	j.SetIndex(m.JointCount())
	return &InsertJointCommand{
		model:      m,
		joint:      j,
		split:      planJointSplit(m, j, j.Point()),
		maxMembers: lim.MaxMembers,
		name:       fmt.Sprintf("Insert joint %d at %s.", j.Number(), geom.Format(j.Point())),
	}
}

// Joint returns the joint being inserted.
func (c *InsertJointCommand) Joint() *truss.Joint { return c.joint }

// Split returns the members the insertion removes and adds.
func (c *InsertJointCommand) Split() (deleted, inserted []*truss.Member) {
	return c.split.deleted, c.split.inserted
}

func (c *InsertJointCommand) Check() error {
	return c.split.check(c.model, c.name, c.maxMembers)
}

func (c *InsertJointCommand) Do() {
	c.model.InsertJoints(c.joint)
	c.split.do(c.model)
}

func (c *InsertJointCommand) Undo() {
	c.split.undo(c.model)
	c.model.DeleteJoints(c.joint)
}

func (c *InsertJointCommand) Name() string { return c.name }

// MoveJointCommand relocates a joint and splits any member it lands on.
// The joint object is kept; its location is exchanged with a replacement.
type MoveJointCommand struct {
	model       *truss.Model
	joint       *truss.Joint
	replacement *truss.Joint
	split       split
	maxMembers  int
	name        string
}

// NewMoveJointCommand plans moving j to pt.
func NewMoveJointCommand(m *truss.Model, j *truss.Joint, pt geom.Point, lim truss.Limits) *MoveJointCommand {
	repl := truss.NewJoint(pt)
	repl.SetIndex(j.Index())
	return &MoveJointCommand{
		model:       m,
		joint:       j,
		replacement: repl,
		split:       planJointSplit(m, j, pt),
		maxMembers:  lim.MaxMembers,
		name:        fmt.Sprintf("Move joint %d to %s.", j.Number(), geom.Format(pt)),
	}
}

func (c *MoveJointCommand) Check() error {
	return c.split.check(c.model, c.name, c.maxMembers)
}

func (c *MoveJointCommand) Do() {
	c.split.do(c.model)
	c.model.ExchangeJoints(c.replacement)
}

func (c *MoveJointCommand) Undo() {
	c.model.ExchangeJoints(c.replacement)
	c.split.undo(c.model)
}

func (c *MoveJointCommand) Name() string { return c.name }

// DeleteJointCommand removes a joint with every member attached to it.
type DeleteJointCommand struct {
	model    *truss.Model
	joint    *truss.Joint
	members  []*truss.Member
	selected []bool
	name     string
}

// NewDeleteJointCommand plans deleting j and its members.
func NewDeleteJointCommand(m *truss.Model, j *truss.Joint) *DeleteJointCommand {
	return &DeleteJointCommand{
		model:   m,
		joint:   j,
		members: m.MembersWithJoint(j),
		name:    fmt.Sprintf("Delete joint %d.", j.Number()),
	}
}

func (c *DeleteJointCommand) Do() {
	c.selected = append(c.selected[:0], c.joint.SetSelected(false))
	for _, mem := range c.members {
		c.selected = append(c.selected, mem.SetSelected(false))
	}
	c.model.DeleteJoints(c.joint)
	c.model.DeleteMembers(c.members...)
}

func (c *DeleteJointCommand) Undo() {
	c.model.InsertJoints(c.joint)
	c.model.InsertMembers(c.members...)
	c.joint.SetSelected(c.selected[0])
	for i, mem := range c.members {
		mem.SetSelected(c.selected[i+1])
	}
}

func (c *DeleteJointCommand) Name() string { return c.name }
