package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// execute runs the root command with a fake TUI that applies fn to the
// store and returns its state.
func execute(t *testing.T, fn func(*store.Store), args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"TODO_THEME", "TODO_LOG_FILE", "TODO_LOG_LEVEL", "TODO_CHAR_LIMIT", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	t.Cleanup(func() {
		ui.SetColorForcing(false, false)
		_ = ui.SetTheme("classic")
	})

	app := &App{runTUI: func(s *store.Store, _ tui.Options) (model.State, error) {
		if fn != nil {
			fn(s)
		}
		return s.State(), nil
	}}
	cmd := app.command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedOrderAndSummary(t *testing.T) {
	var seen []string
	out, err := execute(t, func(s *store.Store) {
		for _, td := range s.State().Todos {
			seen = append(seen, td.Text)
		}
	}, "--no-color", "Buy milk", "  ", "Walk the dog")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if diff := cmp.Diff([]string{"Walk the dog", "Buy milk"}, seen); diff != "" {
		t.Fatalf("seeded order (-want +got):\n%s", diff)
	}
	for _, want := range []string{" 1. ☐ Walk the dog", " 2. ☐ Buy milk", "Total 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryReflectsSession(t *testing.T) {
	out, err := execute(t, func(s *store.Store) {
		id := s.State().Todos[0].ID
		s.Dispatch(store.Toggle{ID: id})
	}, "--no-color", "--group", "a", "b")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	pending := strings.Index(out, "Pending")
	done := strings.Index(out, "Done")
	if pending < 0 || done < 0 || pending > done {
		t.Fatalf("expected Pending then Done sections:\n%s", out)
	}
	if !strings.Contains(out[done:], "☑ b") {
		t.Errorf("completed item should be under Done:\n%s", out)
	}
	if !strings.Contains(out[pending:done], "☐ a") {
		t.Errorf("pending item should be under Pending:\n%s", out)
	}
}

func TestNoTUISkipsProgram(t *testing.T) {
	called := false
	out, err := execute(t, func(*store.Store) { called = true }, "--no-tui", "--no-color", "--theme", "mono", "x")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if called {
		t.Fatal("--no-tui should not start the program")
	}
	if !strings.Contains(out, "[ ] x") {
		t.Errorf("mono theme summary missing item:\n%s", out)
	}
}

func TestNoSummary(t *testing.T) {
	out, err := execute(t, nil, "--no-summary", "x")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got:\n%s", out)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	tests := [][]string{
		{"--theme", "vaporwave"},
		{"--log-level", "loud"},
		{"--color", "--no-color"},
		{"--config", "/does/not/exist.toml"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := execute(t, nil, args...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLogFileReceivesDispatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")
	_, err := execute(t, nil, "--no-tui", "--no-summary", "--log-file", path, "--log-level", "debug", "x")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"add-todo", "session start", "session end"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("log missing %q:\n%s", want, b)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out) != "todo "+Version {
		t.Fatalf("got %q", out)
	}
}
