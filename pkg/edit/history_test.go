package edit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addCommand adds n to a shared counter; it refuses to run when refuse is
// set.
type addCommand struct {
	total  *int
	n      int
	refuse error
}

func (c *addCommand) Do()          { *c.total += c.n }
func (c *addCommand) Undo()        { *c.total -= c.n }
func (c *addCommand) Name() string { return fmt.Sprintf("Add %d.", c.n) }
func (c *addCommand) Check() error { return c.refuse }

func TestHistoryUndoRedo(t *testing.T) {
	total := 0
	h := NewHistory(0, nil)
	one, two := &addCommand{total: &total, n: 1}, &addCommand{total: &total, n: 2}
	require.NoError(t, h.Execute(one))
	require.NoError(t, h.Execute(two))
	assert.Equal(t, 3, total)
	assert.Equal(t, "Add 2.", h.UndoName())

	require.NoError(t, h.Undo())
	assert.Equal(t, 1, total)
	assert.True(t, h.CanRedo())
	assert.Equal(t, "Add 2.", h.RedoName())

	require.NoError(t, h.Redo())
	assert.Equal(t, 3, total)
	assert.ErrorIs(t, h.Redo(), ErrNothingToRedo)

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.Equal(t, 0, total)
	assert.ErrorIs(t, h.Undo(), ErrNothingToUndo)
	assert.Equal(t, "", h.UndoName())
}

func TestHistoryExecuteDiscardsRedoTail(t *testing.T) {
	total := 0
	h := NewHistory(0, nil)
	require.NoError(t, h.Execute(&addCommand{total: &total, n: 1}))
	require.NoError(t, h.Execute(&addCommand{total: &total, n: 2}))
	require.NoError(t, h.Undo())

	three := &addCommand{total: &total, n: 3}
	require.NoError(t, h.Execute(three))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 4, total)
}

func TestHistoryRefusedCommandIsNotRecorded(t *testing.T) {
	total := 0
	h := NewHistory(0, nil)
	boom := errors.New("boom")
	err := h.Execute(&addCommand{total: &total, n: 5, refuse: boom})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, total)
	assert.False(t, h.CanUndo())
}

func TestHistoryUndoToRedoTo(t *testing.T) {
	total := 0
	h := NewHistory(0, nil)
	cmds := make([]*addCommand, 4)
	for i := range cmds {
		cmds[i] = &addCommand{total: &total, n: 1 << i}
		require.NoError(t, h.Execute(cmds[i]))
	}
	var events []Event
	h.OnChange(func(e Event) { events = append(events, e) })

	require.NoError(t, h.UndoTo(cmds[1]))
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, Undone, events[0].Kind)
	assert.Same(t, cmds[1], events[0].Command)

	assert.Equal(t, []Command{cmds[0]}, h.Undoable())
	assert.Equal(t, []Command{cmds[1], cmds[2], cmds[3]}, h.Redoable())

	require.NoError(t, h.RedoTo(cmds[2]))
	assert.Equal(t, 7, total)
	require.Len(t, events, 2)
	assert.Equal(t, Redone, events[1].Kind)

	assert.ErrorIs(t, h.UndoTo(cmds[3]), ErrNotInHistory)
	assert.ErrorIs(t, h.RedoTo(cmds[0]), ErrNotInHistory)
}

func TestHistoryDirtyTracking(t *testing.T) {
	total := 0
	h := NewHistory(0, nil)
	h.NewSession()
	assert.False(t, h.Dirty())
	assert.False(t, h.Stored())

	one := &addCommand{total: &total, n: 1}
	require.NoError(t, h.Execute(one))
	assert.True(t, h.Dirty())

	h.Save()
	assert.False(t, h.Dirty())
	assert.True(t, h.Stored())

	require.NoError(t, h.Undo())
	assert.True(t, h.Dirty())
	require.NoError(t, h.Redo())
	assert.False(t, h.Dirty())

	// Branching away from the saved state makes it unreachable.
	require.NoError(t, h.Undo())
	require.NoError(t, h.Execute(&addCommand{total: &total, n: 2}))
	assert.True(t, h.Dirty())
	require.NoError(t, h.Undo())
	assert.True(t, h.Dirty())
}

func TestHistoryClearKeepsDirtyState(t *testing.T) {
	total := 0
	h := NewHistory(0, nil)
	h.Load()
	require.NoError(t, h.Execute(&addCommand{total: &total, n: 1}))
	h.Clear()
	assert.True(t, h.Dirty())
	assert.False(t, h.CanUndo())

	h.Save()
	h.Clear()
	assert.False(t, h.Dirty())
}

func TestHistoryLimitTrimsOldest(t *testing.T) {
	total := 0
	h := NewHistory(2, nil)
	h.Load()
	base := h.Mark()

	first := &addCommand{total: &total, n: 1}
	require.NoError(t, h.Execute(first))
	h.Save()
	require.NoError(t, h.Execute(&addCommand{total: &total, n: 2}))
	require.NoError(t, h.Execute(&addCommand{total: &total, n: 4}))

	assert.Equal(t, 2, h.Len())
	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.False(t, h.CanUndo())
	assert.Equal(t, 1, total)
	// The saved state, after first, is now the oldest reachable state.
	assert.False(t, h.Dirty())
	assert.False(t, h.AtMark(base))
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "executed", Executed.String())
	assert.Equal(t, "reset", Reset.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}
