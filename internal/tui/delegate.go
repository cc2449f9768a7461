package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/model"
)

// row adapts a model.Todo to bubbles/list.Item
type row struct {
	todo model.Todo
}

func (r row) FilterValue() string { return r.todo.Text }

// rowDelegate renders one todo per line. Rows in edit mode show their
// edit buffer, which lives in buffers until saved.
type rowDelegate struct {
	buffers map[model.ID]textinput.Model
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	t := r.todo

	box := mutedStyle.Render(boxUnchecked)
	if t.IsComplete {
		box = successStyle.Render(boxChecked)
	}

	var text string
	switch {
	case t.IsEditing:
		if buf, ok := d.buffers[t.ID]; ok {
			text = buf.View()
		} else {
			text = editingStyle.Render(t.Text)
		}
	case t.IsComplete:
		text = doneStyle.Render(t.Text)
	default:
		text = t.Text
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, text, controls(t))
}

// controls mirrors what a row offers: save while editing, otherwise edit
// and delete, with delete disabled until the todo is complete.
func controls(t model.Todo) string {
	if t.IsEditing {
		return accentStyle.Render("[enter] save")
	}
	del := disabledStyle.Render("[d] delete")
	if canDelete(t) {
		del = accentStyle.Render("[d] delete")
	}
	return strings.Join([]string{mutedStyle.Render("[e] edit"), del}, " ")
}

func canDelete(t model.Todo) bool { return t.IsComplete && !t.IsEditing }
