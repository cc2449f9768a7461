package store

import "github.com/idilsaglam/todolist/internal/model"

// Reduce computes the state that follows s after a. It never writes to s;
// when a changes nothing (unknown id, nil action) s is returned as is.
// newID is called only for Add.
func Reduce(s model.State, a Action, newID func() model.ID) model.State {
	switch a := a.(type) {
	case Add:
		todos := make([]model.Todo, 0, len(s.Todos)+1)
		todos = append(todos, model.Todo{ID: newID(), Text: a.Text})
		todos = append(todos, s.Todos...)
		return model.State{Todos: todos}

	case Toggle:
		return update(s, a.ID, func(t *model.Todo) { t.IsComplete = !t.IsComplete })

	case Delete:
		i := s.Index(a.ID)
		if i < 0 {
			return s
		}
		todos := make([]model.Todo, 0, len(s.Todos)-1)
		todos = append(todos, s.Todos[:i]...)
		todos = append(todos, s.Todos[i+1:]...)
		return model.State{Todos: todos}

	case BeginEdit:
		return update(s, a.ID, func(t *model.Todo) { t.IsEditing = true })

	case SaveEdit:
		return update(s, a.ID, func(t *model.Todo) {
			t.Text = a.Text
			t.IsEditing = false
		})
	}
	return s
}

// update applies fn to a copy of the matching todo inside a copied list.
func update(s model.State, id model.ID, fn func(*model.Todo)) model.State {
	i := s.Index(id)
	if i < 0 {
		return s
	}
	next := s.Clone()
	fn(&next.Todos[i])
	return next
}
