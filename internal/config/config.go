// Package config loads settings from defaults, a TOML file, the
// environment and finally command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/ui"
)

const (
	DefaultTheme       = "classic"
	DefaultColor       = ColorAuto
	DefaultCharLimit   = 200
	DefaultPlaceholder = "Enter new todo"
	DefaultLogLevel    = "info"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds every user-tunable setting.
type Config struct {
	Theme       string `toml:"theme"`
	Group       bool   `toml:"group"`
	Color       string `toml:"color"`
	CharLimit   int    `toml:"char_limit"`
	Placeholder string `toml:"placeholder"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
	Summary     bool   `toml:"summary"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Theme:       DefaultTheme,
		Color:       DefaultColor,
		CharLimit:   DefaultCharLimit,
		Placeholder: DefaultPlaceholder,
		LogLevel:    DefaultLogLevel,
		Summary:     true,
	}
}

// Load builds a Config from defaults, the config file and the environment.
// An empty path means the default location, which may be absent. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(cfg, expandPath(path), explicit); err != nil {
			return nil, err
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, mustExist bool) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_CHAR_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODO_CHAR_LIMIT: not a number: %q", v)
		}
		cfg.CharLimit = n
	}
	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = ColorNever
	}
	return nil
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	if _, err := ui.LookupTheme(c.Theme); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.CharLimit <= 0 {
		return fmt.Errorf("char_limit must be positive, got %d", c.CharLimit)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/todo/config.toml, falling back to
// ~/.config/todo/config.toml. It is empty when neither can be resolved.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "todo", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "todo", "config.toml")
}

// expandPath resolves a leading ~ and environment variables.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
