package edit

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// EventKind says what changed in a History.
type EventKind int

const (
	Executed EventKind = iota
	Undone
	Redone
	Saved
	Reset
)

func (k EventKind) String() string {
	switch k {
	case Executed:
		return "executed"
	case Undone:
		return "undone"
	case Redone:
		return "redone"
	case Saved:
		return "saved"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to history listeners after every change. Command is
// the last command affected, nil for Saved and Reset.
type Event struct {
	Kind    EventKind
	Command Command
}

// Mark identifies a state of the model reached through the history.
type Mark struct {
	top  Command // last done command, nil for the oldest state
	base uint64  // which oldest state, when top is nil
}

// History is a linear undo/redo stack. Commands before the cursor are done;
// those after it are undone and can be redone until a new command is
// executed, which discards them.
//
// History also tracks a stored mark, the state last saved or loaded, to
// answer whether the model has unsaved changes.
type History struct {
	edits     []Command
	cursor    int
	base      uint64 // bumped whenever the oldest state becomes unreachable
	limit     int
	stored    Mark
	isStored  bool
	listeners []func(Event)
	quiet     bool
	log       *zap.Logger
}

// NewHistory returns an empty history. limit bounds the number of commands
// kept; zero means unbounded. A nil logger disables logging.
func NewHistory(limit int, log *zap.Logger) *History {
	if log == nil {
		log = zap.NewNop()
	}
	return &History{limit: limit, log: log}
}

// OnChange registers fn to run after every change.
func (h *History) OnChange(fn func(Event)) {
	h.listeners = append(h.listeners, fn)
}

func (h *History) notify(e Event) {
	if h.quiet {
		return
	}
	for _, fn := range h.listeners {
		fn(e)
	}
}

// Execute checks cmd, applies it and records it, discarding any undone
// commands. If the check fails the error is returned and nothing changes.
func (h *History) Execute(cmd Command) error {
	if c, ok := cmd.(Checker); ok {
		if err := c.Check(); err != nil {
			h.log.Info("command rejected", zap.String("command", cmd.Name()), zap.Error(err))
			return err
		}
	}
	cmd.Do()
	h.edits = append(h.edits[:h.cursor], cmd)
	clear(h.edits[len(h.edits):cap(h.edits)])
	h.cursor++
	h.trim()
	h.log.Debug("command executed", zap.String("command", cmd.Name()), zap.Int("depth", h.cursor))
	h.notify(Event{Kind: Executed, Command: cmd})
	return nil
}

// trim drops the oldest commands beyond the limit.
func (h *History) trim() {
	if h.limit <= 0 {
		return
	}
	for len(h.edits) > h.limit && h.cursor > 0 {
		oldest := h.edits[0]
		h.edits = slices.Delete(h.edits, 0, 1)
		h.cursor--
		h.base++
		if h.stored.top == oldest {
			h.stored = Mark{base: h.base}
		}
	}
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.edits) }

// Undo reverts the most recent done command.
func (h *History) Undo() error {
	if !h.CanUndo() {
		return ErrNothingToUndo
	}
	h.cursor--
	cmd := h.edits[h.cursor]
	cmd.Undo()
	h.log.Debug("command undone", zap.String("command", cmd.Name()))
	h.notify(Event{Kind: Undone, Command: cmd})
	return nil
}

// Redo reapplies the most recently undone command.
func (h *History) Redo() error {
	if !h.CanRedo() {
		return ErrNothingToRedo
	}
	cmd := h.edits[h.cursor]
	cmd.Do()
	h.cursor++
	h.log.Debug("command redone", zap.String("command", cmd.Name()))
	h.notify(Event{Kind: Redone, Command: cmd})
	return nil
}

// UndoTo undoes commands until cmd has been undone. Listeners hear a single
// event at the end.
func (h *History) UndoTo(cmd Command) error {
	i := slices.Index(h.edits[:h.cursor], cmd)
	if i < 0 {
		return ErrNotInHistory
	}
	h.quiet = true
	for h.cursor > i {
		_ = h.Undo()
	}
	h.quiet = false
	h.notify(Event{Kind: Undone, Command: cmd})
	return nil
}

// RedoTo redoes commands until cmd has been redone. Listeners hear a single
// event at the end.
func (h *History) RedoTo(cmd Command) error {
	i := slices.Index(h.edits[h.cursor:], cmd)
	if i < 0 {
		return ErrNotInHistory
	}
	target := h.cursor + i + 1
	h.quiet = true
	for h.cursor < target {
		_ = h.Redo()
	}
	h.quiet = false
	h.notify(Event{Kind: Redone, Command: cmd})
	return nil
}

// Undoable returns the done commands, most recent first.
func (h *History) Undoable() []Command {
	out := slices.Clone(h.edits[:h.cursor])
	slices.Reverse(out)
	return out
}

// Redoable returns the undone commands, next to redo first.
func (h *History) Redoable() []Command {
	return slices.Clone(h.edits[h.cursor:])
}

// UndoName and RedoName describe the next undo and redo, or "".
func (h *History) UndoName() string {
	if !h.CanUndo() {
		return ""
	}
	return h.edits[h.cursor-1].Name()
}

func (h *History) RedoName() string {
	if !h.CanRedo() {
		return ""
	}
	return h.edits[h.cursor].Name()
}

// Mark returns the current state.
func (h *History) Mark() Mark {
	if h.cursor == 0 {
		return Mark{base: h.base}
	}
	return Mark{top: h.edits[h.cursor-1]}
}

// AtMark reports whether the model is in the state m was taken in.
func (h *History) AtMark(m Mark) bool {
	return h.Mark() == m
}

// Save records the current state as stored.
func (h *History) Save() {
	h.stored = h.Mark()
	h.isStored = true
	h.notify(Event{Kind: Saved})
}

// Load forgets all commands and records the current state as stored.
func (h *History) Load() {
	h.discard()
	h.stored = h.Mark()
	h.isStored = true
	h.notify(Event{Kind: Reset})
}

// NewSession forgets all commands; the current state is clean but has never
// been stored.
func (h *History) NewSession() {
	h.discard()
	h.stored = h.Mark()
	h.isStored = false
	h.notify(Event{Kind: Reset})
}

// Clear forgets all commands, keeping the dirty state.
func (h *History) Clear() {
	dirty := h.Dirty()
	h.discard()
	if !dirty {
		h.stored = h.Mark()
	}
	h.notify(Event{Kind: Reset})
}

func (h *History) discard() {
	clear(h.edits)
	h.edits = h.edits[:0]
	h.cursor = 0
	h.base++
}

// Dirty reports whether the model differs from the stored state.
func (h *History) Dirty() bool { return !h.AtMark(h.stored) }

// Stored reports whether the model has ever been saved or loaded.
func (h *History) Stored() bool { return h.isStored }

// Len is the number of commands held, done or undone.
func (h *History) Len() int { return len(h.edits) }
