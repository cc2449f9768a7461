package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

// Run starts the Bubble Tea program and returns the state the session
// ended with.
func Run(s *store.Store, opts Options, progOpts ...tea.ProgramOption) (model.State, error) {
	popts := append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(New(s, opts), popts...)
	if _, err := p.Run(); err != nil {
		return model.State{}, fmt.Errorf("run tui: %w", err)
	}
	return s.State(), nil
}
