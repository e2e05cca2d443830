package truss

// Selectable is the part of an entity the selection machinery needs.
type Selectable interface {
	IsSelected() bool
	// SetSelected sets the flag and returns its previous value.
	SetSelected(selected bool) bool
}

// Editable is implemented by entities that live in an ordered collection and
// can be manipulated by reversible edit commands.
//
// SwapContents exchanges the entity's content with other while both objects
// keep their identity, so pointers held elsewhere keep referring to the
// same slot. Index and selection belong to the slot and are not exchanged.
type Editable[T any] interface {
	Selectable
	Index() int
	SetIndex(i int)
	SwapContents(other T)
}

// entity is the constraint used by the ordered-collection primitives.
type entity[T any] interface {
	comparable
	Editable[T]
}
