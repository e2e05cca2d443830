package edit

import (
	"errors"

	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/site"
	"github.com/chazu/truss/pkg/truss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultHistoryLimit bounds the undo stack when no limit is configured.
const DefaultHistoryLimit = 100

// Session is an editable truss on a site: the model, its undo history and
// the current selection. It is not safe for concurrent use.
type Session struct {
	id        uuid.UUID
	site      *site.Conditions
	model     *truss.Model
	history   *History
	inventory truss.Inventory
	limits    truss.Limits
	log       *zap.Logger

	lastSelected truss.Selectable

	analysis     Analysis
	analysisMark Mark
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	log          *zap.Logger
	limits       truss.Limits
	inventory    truss.Inventory
	historyLimit int
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *sessionConfig) { c.log = l }
}

// WithLimits sets the joint and member capacity.
func WithLimits(l truss.Limits) Option {
	return func(c *sessionConfig) { c.limits = l }
}

// WithInventory sets the stock catalog.
func WithInventory(inv truss.Inventory) Option {
	return func(c *sessionConfig) { c.inventory = inv }
}

// WithHistoryLimit bounds the number of undoable commands; zero is unbounded.
func WithHistoryLimit(n int) Option {
	return func(c *sessionConfig) { c.historyLimit = n }
}

// NewSession starts an editing session on s with only the site's fixed
// joints in the model.
func NewSession(s *site.Conditions, opts ...Option) *Session {
	cfg := sessionConfig{
		log:          zap.NewNop(),
		limits:       truss.DefaultLimits(),
		inventory:    truss.DefaultInventory(),
		historyLimit: DefaultHistoryLimit,
	}
	for _, o := range opts {
		o(&cfg)
	}
	sess := &Session{
		id:        uuid.New(),
		site:      s,
		model:     truss.NewWithJoints(s.PrescribedJoints()),
		inventory: cfg.inventory,
		limits:    cfg.limits,
		log:       cfg.log,
	}
	sess.history = NewHistory(cfg.historyLimit, cfg.log.With(zap.String("session", sess.id.String())))
	sess.history.NewSession()
	return sess
}

func (s *Session) ID() uuid.UUID              { return s.id }
func (s *Session) Site() *site.Conditions     { return s.site }
func (s *Session) Model() *truss.Model        { return s.model }
func (s *Session) History() *History          { return s.history }
func (s *Session) Inventory() truss.Inventory { return s.inventory }
func (s *Session) Limits() truss.Limits       { return s.limits }

// execute runs cmd through the history and maps a capacity rejection to a
// status.
func (s *Session) execute(cmd Command) Status {
	if err := s.history.Execute(cmd); err != nil {
		if errors.Is(err, ErrMemberCapacity) {
			return MemberAtCapacity
		}
		// Only capacity checks can refuse a command.
		panic(err)
	}
	return OK
}

func (s *Session) refuse(op string, st Status, fields ...zap.Field) Status {
	s.log.Info("edit refused", append([]zap.Field{zap.String("op", op), zap.Stringer("status", st)}, fields...)...)
	return st
}

// ---------------------------------------------------------------------------
// Joints
// ---------------------------------------------------------------------------

// AddJoint adds a free joint at pt, splitting any member it lands on. The
// new joint is returned when the status is OK.
func (s *Session) AddJoint(pt geom.Point) (*truss.Joint, Status) {
	if s.model.FindJointAt(pt) != nil {
		return nil, s.refuse("add joint", JointExists, zap.Stringer("at", loc(pt)))
	}
	if s.model.JointCount() >= s.limits.MaxJoints {
		return nil, s.refuse("add joint", JointAtCapacity)
	}
	j := truss.NewJoint(pt)
	if st := s.execute(NewInsertJointCommand(s.model, j, s.limits)); st != OK {
		return nil, s.refuse("add joint", st)
	}
	return j, OK
}

// MoveJoint moves j to pt, splitting any member it lands on.
func (s *Session) MoveJoint(j *truss.Joint, pt geom.Point) Status {
	switch {
	case j.IsFixed():
		return s.refuse("move joint", FixedJoint)
	case j.IsAt(pt):
		return AlreadyThere
	case s.model.FindJointAt(pt) != nil:
		return s.refuse("move joint", JointExists, zap.Stringer("at", loc(pt)))
	}
	if st := s.execute(NewMoveJointCommand(s.model, j, pt, s.limits)); st != OK {
		return s.refuse("move joint", st)
	}
	return OK
}

// DeleteJoint removes j and every member attached to it.
func (s *Session) DeleteJoint(j *truss.Joint) Status {
	if j.IsFixed() {
		return s.refuse("delete joint", FixedJoint)
	}
	s.forget(j)
	for _, mem := range s.model.MembersWithJoint(j) {
		s.forget(mem)
	}
	return s.execute(NewDeleteJointCommand(s.model, j))
}

// Delete removes a joint or member. Deleting a member returns OK.
func (s *Session) Delete(e truss.Selectable) Status {
	switch e := e.(type) {
	case *truss.Joint:
		return s.DeleteJoint(e)
	case *truss.Member:
		s.DeleteMember(e)
	}
	return OK
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

// AddMember joins a and b with a member of the given stock. Joints lying on
// the way are honored by adding the chain of members through them.
func (s *Session) AddMember(a, b *truss.Joint, stock truss.Stock) Status {
	switch {
	case a == b:
		return s.refuse("add member", SameJoint)
	case s.model.FindMember(a, b) != nil:
		return s.refuse("add member", MemberExists)
	case s.site.CrossesPier(a.Point(), b.Point()):
		return s.refuse("add member", CrossesPier)
	case s.model.MemberCount() >= s.limits.MaxMembers:
		return s.refuse("add member", MemberAtCapacity)
	}
	cmd := NewInsertMemberCommand(s.model, truss.NewMember(a, b, stock), s.limits)
	if len(cmd.Members()) == 0 {
		return s.refuse("add member", MemberExists)
	}
	if st := s.execute(cmd); st != OK {
		return s.refuse("add member", st)
	}
	return OK
}

// DeleteMember removes mem and any free joint it leaves without members.
func (s *Session) DeleteMember(mem *truss.Member) {
	s.forget(mem)
	s.execute(NewDeleteMembersCommand(s.model, []*truss.Member{mem}))
}

// DeleteSelection deletes the selected joint, or else the selected members.
// It reports false when nothing is selected.
func (s *Session) DeleteSelection() bool {
	if j := s.model.SelectedJoint(); j != nil {
		return s.DeleteJoint(j) == OK
	}
	selected := s.model.SelectedMembers()
	if len(selected) == 0 {
		return false
	}
	s.lastSelected = nil
	s.execute(NewDeleteMembersCommand(s.model, selected))
	return true
}

// ChangeSelectedMembers applies the non-negative fields of change to the
// selected members. It reports whether anything changed.
func (s *Session) ChangeSelectedMembers(change truss.Stock) bool {
	selected := s.model.SelectedMembers()
	if len(selected) == 0 {
		return false
	}
	cmd := NewChangeMembersCommand(s.model, selected, change)
	if !cmd.Changes() {
		return false
	}
	s.execute(cmd)
	return true
}

// IncrementMemberSize moves the size of every selected member by offset.
// It reports whether anything changed.
func (s *Session) IncrementMemberSize(offset int) bool {
	selected := s.model.SelectedMembers()
	if len(selected) == 0 || offset == 0 {
		return false
	}
	cmd := NewResizeMembersCommand(s.model, s.inventory, selected, offset)
	if !cmd.Changes() {
		return false
	}
	s.execute(cmd)
	return true
}

// SelectedStock returns the distinct stock of the selected members.
func (s *Session) SelectedStock() []truss.Stock {
	var out []truss.Stock
	seen := make(map[truss.Stock]bool)
	for _, mem := range s.model.SelectedMembers() {
		if !seen[mem.Stock()] {
			seen[mem.Stock()] = true
			out = append(out, mem.Stock())
		}
	}
	return out
}

// AllowedShapeChanges reports which size changes apply to the selection.
func (s *Session) AllowedShapeChanges() truss.ShapeChange {
	return s.inventory.AllowedShapeChanges(s.SelectedStock())
}

// ---------------------------------------------------------------------------
// Repairs
// ---------------------------------------------------------------------------

// Autofix adds any missing deck members, using the most common stock in the
// model. It reports whether anything was added.
func (s *Session) Autofix() bool {
	stock := s.mostCommonStock()
	var missing []*truss.Member
	for i := 0; i < s.site.Panels(); i++ {
		a, b := s.model.Joint(i), s.model.Joint(i+1)
		if s.model.FindMember(a, b) == nil {
			missing = append(missing, truss.NewMember(a, b, stock))
		}
	}
	if len(missing) == 0 {
		return false
	}
	return s.execute(NewInsertMembersCommand(s.model, missing, s.limits)) == OK
}

// Fixup splits every member passing through a joint and returns how many
// members it replaced.
func (s *Session) Fixup() int {
	cmd := NewFixupCommand(s.model, s.limits)
	if cmd.Revised() == 0 {
		return 0
	}
	if s.execute(cmd) != OK {
		return 0
	}
	return cmd.Revised()
}

func (s *Session) mostCommonStock() truss.Stock {
	counts := make(map[truss.Stock]int)
	best, bestN := s.inventory.DefaultStock(), 0
	for _, mem := range s.model.Members() {
		counts[mem.Stock()]++
		if n := counts[mem.Stock()]; n > bestN {
			best, bestN = mem.Stock(), n
		}
	}
	return best
}

// ---------------------------------------------------------------------------
// Undo
// ---------------------------------------------------------------------------

// Undo reverts the last edit.
func (s *Session) Undo() error { return s.history.Undo() }

// Redo reapplies the last undone edit.
func (s *Session) Redo() error { return s.history.Redo() }

// loc adapts a point to zap.Stringer.
type loc geom.Point

func (p loc) String() string { return geom.Format(geom.Point(p)) }
