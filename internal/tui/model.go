package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

// Options tune the widget.
type Options struct {
	CharLimit   int
	Placeholder string
	Logger      *log.Logger
}

type focus int

const (
	focusList focus = iota
	focusNew
	focusEdit
)

// Model is the Bubble Tea model for the list. It never changes todos
// itself: every change is dispatched to the store and the rows are rebuilt
// from the state it returns.
type Model struct {
	store *store.Store
	state model.State

	list list.Model
	keys keyMap

	focus   focus
	input   textinput.Model // new todo; cleared only after a successful add
	editing model.ID        // row whose buffer has focus when focus == focusEdit

	// Per-row edit buffers, keyed by todo id. Shared with the delegate.
	buffers map[model.ID]textinput.Model

	status    string
	statusErr bool

	width, height int
	charLimit     int
	logger        *log.Logger
}

// New builds the widget around s.
func New(s *store.Store, opts Options) Model {
	if opts.CharLimit <= 0 {
		opts.CharLimit = 200
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "Enter new todo"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	buffers := make(map[model.ID]textinput.Model)
	keys := defaultKeyMap()

	l := list.New(nil, rowDelegate{buffers: buffers}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = keys.help
	l.AdditionalFullHelpKeys = keys.help

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = opts.Placeholder
	in.CharLimit = opts.CharLimit

	m := Model{
		store:     s,
		list:      l,
		keys:      keys,
		input:     in,
		buffers:   buffers,
		charLimit: opts.CharLimit,
		logger:    opts.Logger,
		width:     80,
		height:    24,
	}
	m.state = s.State()
	m.syncList()
	m.resize()
	return m
}

// State is the latest state returned by the store.
func (m Model) State() model.State { return m.state }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.focus {
		case focusNew:
			return m.updateNew(msg)
		case focusEdit:
			return m.updateEdit(msg)
		}
		if !m.list.SettingFilter() {
			return m.updateList(msg)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.focus {
	case focusNew:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	case focusEdit:
		if buf, ok := m.buffers[m.editing]; ok {
			buf, cmd = buf.Update(msg)
			m.buffers[m.editing] = buf
			cmds = append(cmds, cmd)
		}
	}
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.setStatus("", false)
	sel, hasSel := m.selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "esc" && m.list.FilterState() == list.FilterApplied {
			break
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Add):
		m.focus = focusNew
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		if !hasSel {
			return m, nil
		}
		cmd := m.dispatch(store.Toggle{ID: sel.ID})
		return m, cmd

	case key.Matches(msg, m.keys.Edit):
		if !hasSel {
			return m, nil
		}
		var cmd tea.Cmd
		if !sel.IsEditing {
			cmd = m.dispatch(store.BeginEdit{ID: sel.ID})
		}
		focusCmd := m.focusBuffer(sel)
		return m, tea.Batch(cmd, focusCmd)

	case key.Matches(msg, m.keys.Save):
		if !hasSel || !sel.IsEditing {
			break
		}
		cmd := m.save(sel.ID)
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if !hasSel {
			return m, nil
		}
		if !canDelete(sel) {
			m.setStatus("complete the todo before deleting it", true)
			return m, nil
		}
		cmd := m.dispatch(store.Delete{ID: sel.ID})
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNew(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			m.setStatus("todo text cannot be empty", true)
			m.logger.Debug("add rejected", "reason", "empty")
			return m, nil
		}
		cmd := m.dispatch(store.Add{Text: text})
		m.input.Reset()
		m.input.Blur()
		m.focus = focusList
		m.setStatus("", false)
		if m.list.FilterState() == list.Unfiltered {
			m.list.Select(0)
		}
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.focus = focusList
		m.setStatus("", false)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	buf, ok := m.buffers[m.editing]
	if !ok {
		m.focus = focusList
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		cmd := m.save(m.editing)
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		// The row stays in edit mode and keeps its buffer.
		buf.Blur()
		m.buffers[m.editing] = buf
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	buf, cmd = buf.Update(msg)
	m.buffers[m.editing] = buf
	return m, cmd
}

// save commits the row's buffer. Empty text is accepted.
func (m *Model) save(id model.ID) tea.Cmd {
	text := ""
	if buf, ok := m.buffers[id]; ok {
		text = buf.Value()
	} else if t, ok := m.state.Find(id); ok {
		text = t.Text
	}
	delete(m.buffers, id)
	if m.focus == focusEdit && m.editing == id {
		m.focus = focusList
	}
	return m.dispatch(store.SaveEdit{ID: id, Text: text})
}

// focusBuffer gives keyboard focus to the row's edit buffer, seeding it
// from the todo's text the first time.
func (m *Model) focusBuffer(t model.Todo) tea.Cmd {
	buf, ok := m.buffers[t.ID]
	if !ok {
		buf = textinput.New()
		buf.Prompt = ""
		// Never shorter than the text it is seeded with.
		buf.CharLimit = max(m.charLimit, utf8.RuneCountInString(t.Text))
		buf.Width = m.bufferWidth()
		buf.SetValue(t.Text)
		buf.CursorEnd()
	}
	cmd := buf.Focus()
	m.buffers[t.ID] = buf
	m.editing = t.ID
	m.focus = focusEdit
	return cmd
}

func (m *Model) dispatch(a store.Action) tea.Cmd {
	m.state = m.store.Dispatch(a)
	m.pruneBuffers()
	return m.syncList()
}

// pruneBuffers drops buffers whose row left edit mode or the list.
func (m *Model) pruneBuffers() {
	for id := range m.buffers {
		if t, ok := m.state.Find(id); !ok || !t.IsEditing {
			delete(m.buffers, id)
		}
	}
	if _, ok := m.buffers[m.editing]; !ok && m.focus == focusEdit {
		m.focus = focusList
	}
}

// syncList rebuilds the rows from the current state.
func (m *Model) syncList() tea.Cmd {
	items := make([]list.Item, 0, len(m.state.Todos))
	for _, t := range m.state.Todos {
		items = append(items, row{todo: t})
	}
	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = header(m.state)
	return cmd
}

func (m Model) selected() (model.Todo, bool) {
	r, ok := m.list.SelectedItem().(row)
	if !ok {
		return model.Todo{}, false
	}
	return r.todo, true
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) resize() {
	// border + padding on both sides
	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}
	// input bar (3 lines + border) and status line
	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(inner, listHeight)
	m.input.Width = inner - 6
	for id, buf := range m.buffers {
		buf.Width = m.bufferWidth()
		m.buffers[id] = buf
	}
}

func (m Model) bufferWidth() int {
	w := m.width - 30
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) View() string {
	title := "New todo"
	if m.focus == focusNew {
		title = accentStyle.Render(title)
	}
	bar := inputBar(title + "\n" + m.input.View())

	status := helpStyle.Render(" ")
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render("✖ " + m.status)
		} else {
			status = mutedStyle.Render(m.status)
		}
	}
	return panelString(lipgloss.JoinVertical(lipgloss.Left, m.list.View(), bar, status))
}

// header shows live counts for the list title.
func header(s model.State) string {
	done, pending := s.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), s.Len(),
	)
}
