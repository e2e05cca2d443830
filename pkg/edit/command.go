// Package edit implements reversible editing of a truss model: the command
// types, the automatic repair that splits members a joint lands on, a
// linear undo/redo history and the Session that ties them to a site.
package edit

// Command is a reversible mutation of a model. A command captures
// everything it needs at construction; Do and Undo only replay it. Commands
// must be pointers so the history can compare them by identity.
type Command interface {
	Do()
	Undo()
	// Name is a short sentence describing the edit for undo/redo menus.
	Name() string
}

// Checker is implemented by commands that can refuse to run. Check is called
// by History.Execute before Do; a non-nil error leaves the model untouched.
type Checker interface {
	Check() error
}
