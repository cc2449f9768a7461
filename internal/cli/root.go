package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// App holds the root flags.
type App struct {
	ConfigPath string
	Theme      string
	Group      bool
	Color      bool
	NoColor    bool
	LogFile    string
	LogLevel   string
	NoSummary  bool
	NoTUI      bool

	// runTUI is swapped out in tests.
	runTUI func(*store.Store, tui.Options) (model.State, error)
}

func NewRootCmd() *cobra.Command {
	app := &App{
		runTUI: func(s *store.Store, opts tui.Options) (model.State, error) {
			return tui.Run(s, opts)
		},
	}
	return app.command()
}

func (app *App) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo [flags] [item...]",
		Short:         "todo - a tiny interactive to-do list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		Example: strings.TrimSpace(`
  # Start with an empty list
  todo

  # Start with a few items (the last one ends up on top)
  todo "Buy milk" "Walk the dog"

  # Print the items without opening the list
  todo --no-tui --group "Buy milk"
`),
		RunE: app.run,
	}

	f := cmd.Flags()
	f.StringVar(&app.ConfigPath, "config", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&app.Theme, "theme", "", "summary theme: "+strings.Join(ui.ThemeNames, ", "))
	f.BoolVar(&app.Group, "group", false, "group the summary by pending/done")
	f.BoolVar(&app.Color, "color", false, "always use colors")
	f.BoolVar(&app.NoColor, "no-color", false, "never use colors")
	f.StringVar(&app.LogFile, "log-file", "", "write logs to this file")
	f.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&app.NoSummary, "no-summary", false, "do not print the summary on exit")
	f.BoolVar(&app.NoTUI, "no-tui", false, "skip the interactive list")
	cmd.MarkFlagsMutuallyExclusive("color", "no-color")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "todo", Version)
		},
	})
	return cmd
}

func (app *App) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	app.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Prefix: "todo"})
	if err != nil {
		return err
	}
	defer logger.Close()

	switch cfg.Color {
	case config.ColorAlways:
		ui.SetColorForcing(true, false)
	case config.ColorNever:
		ui.SetColorForcing(false, true)
	default:
		ui.SetColorForcing(false, false)
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return err
	}

	s := store.New(store.WithLogger(logger.Logger))
	seeded := seed(s, args)
	logger.Info("session start", "seeded", seeded, "theme", cfg.Theme)

	final := s.State()
	if !app.NoTUI {
		final, err = app.runTUI(s, tui.Options{
			CharLimit:   cfg.CharLimit,
			Placeholder: cfg.Placeholder,
			Logger:      logger.Logger,
		})
		if err != nil {
			logger.Error("tui failed", "err", err)
			return err
		}
	}

	done, pending := final.Stats()
	logger.Info("session end", "done", done, "pending", pending)

	if cfg.Summary {
		printSummary(cmd.OutOrStdout(), final, cfg.Group)
	}
	return nil
}

// applyFlags lets explicitly set flags win over file and environment.
func (app *App) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("theme") {
		cfg.Theme = app.Theme
	}
	if f.Changed("group") {
		cfg.Group = app.Group
	}
	if f.Changed("color") && app.Color {
		cfg.Color = config.ColorAlways
	}
	if f.Changed("no-color") && app.NoColor {
		cfg.Color = config.ColorNever
	}
	if f.Changed("log-file") {
		cfg.LogFile = app.LogFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = app.LogLevel
	}
	if f.Changed("no-summary") {
		cfg.Summary = !app.NoSummary
	}
}

// seed dispatches an Add per non-blank argument, in order, and reports
// how many were added.
func seed(s *store.Store, items []string) int {
	n := 0
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		s.Dispatch(store.Add{Text: it})
		n++
	}
	return n
}
