package store

import "github.com/idilsaglam/todolist/internal/model"

// Action is a requested state transition. The set of variants is closed:
// only the types in this file implement it.
type Action interface {
	Kind() string
	action()
}

// Add prepends a new todo. Text is taken as given; callers validate it.
type Add struct{ Text string }

// Toggle flips the completion flag.
type Toggle struct{ ID model.ID }

// Delete removes a todo whether or not it is complete.
type Delete struct{ ID model.ID }

// BeginEdit puts a todo in edit mode. Other todos keep their flag.
type BeginEdit struct{ ID model.ID }

// SaveEdit replaces the text and leaves edit mode.
type SaveEdit struct {
	ID   model.ID
	Text string
}

func (Add) Kind() string       { return "add-todo" }
func (Toggle) Kind() string    { return "toggle-todo" }
func (Delete) Kind() string    { return "delete-todo" }
func (BeginEdit) Kind() string { return "edit-todo" }
func (SaveEdit) Kind() string  { return "save-todo" }

func (Add) action()       {}
func (Toggle) action()    {}
func (Delete) action()    {}
func (BeginEdit) action() {}
func (SaveEdit) action()  {}
