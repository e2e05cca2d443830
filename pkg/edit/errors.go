package edit

import (
	"errors"
	"fmt"
)

var (
	// ErrMemberCapacity is matched by every rejection for exceeding the
	// member limit.
	ErrMemberCapacity = errors.New("member capacity exceeded")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNotInHistory is returned by UndoTo and RedoTo for a command that is
	// not on the relevant side of the cursor.
	ErrNotInHistory = errors.New("command not in history")
)

// CapacityError reports a command rejected before it touched the model
// because the result would hold more members than allowed.
type CapacityError struct {
	Command string
	Want    int
	Max     int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: would leave %d members, limit is %d", e.Command, e.Want, e.Max)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrMemberCapacity
}
