package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the default config location at an empty temp dir and
// clears the variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"TODO_THEME", "TODO_LOG_FILE", "TODO_LOG_LEVEL", "TODO_CHAR_LIMIT", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.CharLimit != DefaultCharLimit {
		t.Errorf("CharLimit: got %d, want %d", cfg.CharLimit, DefaultCharLimit)
	}
	if !cfg.Summary {
		t.Error("Summary: got false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaultLocation(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "todo", "config.toml"), `
theme = "neon"
group = true
summary = false
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "neon" || !cfg.Group || cfg.Summary {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Placeholder != DefaultPlaceholder {
		t.Errorf("unset keys should keep defaults, Placeholder = %q", cfg.Placeholder)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
theme = "neon"
char_limit = 50
log_level = "warn"
`)
	t.Setenv("TODO_THEME", "mono")
	t.Setenv("TODO_CHAR_LIMIT", "80")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme: got %q, want mono", cfg.Theme)
	}
	if cfg.CharLimit != 80 {
		t.Errorf("CharLimit: got %d, want 80", cfg.CharLimit)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color: got %q, want never", cfg.Color)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
	}{
		{"explicit path missing", func(t *testing.T, dir string) string {
			return filepath.Join(dir, "nope.toml")
		}},
		{"bad toml", func(t *testing.T, dir string) string {
			p := filepath.Join(dir, "bad.toml")
			writeFile(t, p, "theme = ")
			return p
		}},
		{"unknown key", func(t *testing.T, dir string) string {
			p := filepath.Join(dir, "extra.toml")
			writeFile(t, p, `colour = "always"`)
			return p
		}},
		{"bad char limit env", func(t *testing.T, dir string) string {
			t.Setenv("TODO_CHAR_LIMIT", "lots")
			return ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if _, err := Load(tt.setup(t, dir)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"mono theme", func(c *Config) { c.Theme = "mono" }, false},
		{"unknown theme", func(c *Config) { c.Theme = "vaporwave" }, true},
		{"bad color", func(c *Config) { c.Color = "sometimes" }, true},
		{"zero char limit", func(c *Config) { c.CharLimit = 0 }, true},
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got, want := expandPath("~/x.toml"), filepath.Join(home, "x.toml"); got != want {
		t.Errorf("expandPath: got %q, want %q", got, want)
	}
	t.Setenv("TODO_TEST_DIR", "/tmp/cfg")
	if got := expandPath("$TODO_TEST_DIR/a.toml"); got != "/tmp/cfg/a.toml" {
		t.Errorf("expandPath env: got %q", got)
	}
}
