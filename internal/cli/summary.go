package cli

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

const maxTextWidth = 80

// printSummary draws the session's final list in a framed panel.
func printSummary(w io.Writer, s model.State, group bool) {
	d, p := s.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, "Todos"),
		ui.C(ui.Current().Success, ui.Current().SymDone), d,
		ui.C(ui.Current().Pending, ui.Current().SymUnchecked), p,
		ui.C(ui.Current().Accent, "Total"), s.Len(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(ui.Current().Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(s.Todos)...)
	} else {
		lines = append(lines, flatLines(s.Todos)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Nothing was saved; the list lives only for this session."))
	ui.Panel(w, lines)
}

// -------------- rendering helpers --------------

func flatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{ui.C(ui.Current().Muted, "no items")}
	}
	out := make([]string, 0, len(todos))
	for i, t := range todos {
		idx := fmt.Sprintf("%2d.", i+1)
		box := ui.Current().BoxUnchecked
		color := ui.Current().Muted
		text := runewidth.Truncate(t.Text, maxTextWidth, "...")
		if t.IsComplete {
			box, color = ui.Current().BoxChecked, ui.Current().Success
			text = ui.C(ui.Strike, text)
		}
		if t.IsEditing {
			text += " " + ui.C(ui.Current().Pending, "(unsaved edit)")
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(ui.Dim, idx), ui.C(color, box), text))
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	var pend, done []model.Todo
	for _, t := range todos {
		if t.IsComplete {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	var lines []string
	lines = append(lines, ui.C(ui.Current().Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
