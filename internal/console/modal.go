package console

// ModalState is the lifecycle of an entity form
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalCreating
	ModalEditing
)

func (s ModalState) String() string {
	switch s {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	}
	return "closed"
}

// Modal tracks whether a form is open and, when editing, which entity it edits.
// The target is only reachable in ModalEditing, so "editing nothing" cannot be represented.
type Modal[T any] struct {
	state  ModalState
	target T
}

// OpenCreate opens the form for a new entity
func (m *Modal[T]) OpenCreate() {
	var zero T
	m.state = ModalCreating
	m.target = zero
}

// OpenEdit opens the form for an existing entity
func (m *Modal[T]) OpenEdit(target T) {
	m.state = ModalEditing
	m.target = target
}

// Close discards the form
func (m *Modal[T]) Close() {
	var zero T
	m.state = ModalClosed
	m.target = zero
}

func (m *Modal[T]) State() ModalState { return m.state }

func (m *Modal[T]) IsOpen() bool { return m.state != ModalClosed }

// Target returns the entity being edited. ok is false unless the modal is editing.
func (m *Modal[T]) Target() (target T, ok bool) {
	if m.state != ModalEditing {
		return target, false
	}
	return m.target, true
}
