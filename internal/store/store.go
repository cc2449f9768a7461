package store

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
)

// Store owns the list state. Every change goes through Dispatch.
// It is meant to be driven from a single goroutine (the UI loop).
type Store struct {
	state  model.State
	newID  func() model.ID
	logger *log.Logger
}

type Option func(*Store)

// WithIDSource replaces the random id source. The function must never
// return the same id twice.
func WithIDSource(fn func() model.ID) Option {
	return func(s *Store) { s.newID = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithState seeds the store.
func WithState(st model.State) Option {
	return func(s *Store) { s.state = st.Clone() }
}

func New(opts ...Option) *Store {
	s := &Store{newID: model.NewID}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) model.State {
	prev := s.state.Len()
	s.state = Reduce(s.state, a, s.newID)

	if a == nil {
		s.logger.Debug("dispatch", "action", "<nil>")
		return s.State()
	}
	fields := []any{"action", a.Kind()}
	if id, ok := target(a); ok {
		fields = append(fields, "id", id.Short())
	}
	fields = append(fields, "before", prev, "after", s.state.Len())
	s.logger.Debug("dispatch", fields...)
	return s.State()
}

// target is the todo an action addresses; Add has none yet.
func target(a Action) (model.ID, bool) {
	switch a := a.(type) {
	case Toggle:
		return a.ID, true
	case Delete:
		return a.ID, true
	case BeginEdit:
		return a.ID, true
	case SaveEdit:
		return a.ID, true
	}
	return model.ID{}, false
}

// State returns a copy of the current state.
func (s *Store) State() model.State { return s.state.Clone() }
