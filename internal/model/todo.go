package model

import "github.com/google/uuid"

// ID identifies a Todo for its whole lifetime.
type ID uuid.UUID

// NewID returns a fresh random ID.
func NewID() ID { return ID(uuid.New()) }

func (id ID) String() string { return uuid.UUID(id).String() }

// Short is the first block of the id, enough to tell rows apart in logs.
func (id ID) Short() string { return id.String()[:8] }

// Todo is one entry of the list.
// IsEditing is a UI mode flag; it is not part of the item's content.
type Todo struct {
	ID         ID
	Text       string
	IsComplete bool
	IsEditing  bool
}

// State is the whole list, newest first.
type State struct {
	Todos []Todo
}

func (s State) Len() int { return len(s.Todos) }

// Index returns the position of the todo with the given id, or -1.
func (s State) Index(id ID) int {
	for i, t := range s.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns a copy of the todo with the given id.
func (s State) Find(id ID) (Todo, bool) {
	if i := s.Index(id); i >= 0 {
		return s.Todos[i], true
	}
	return Todo{}, false
}

// Stats counts completed and pending todos.
func (s State) Stats() (done, pending int) {
	for _, t := range s.Todos {
		if t.IsComplete {
			done++
		} else {
			pending++
		}
	}
	return
}

// Clone returns a State that shares no backing array with s.
func (s State) Clone() State {
	if s.Todos == nil {
		return State{}
	}
	out := make([]Todo, len(s.Todos))
	copy(out, s.Todos)
	return State{Todos: out}
}
