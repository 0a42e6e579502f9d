// Package cli implements the chronoscope command line: one-shot range
// resolution, a live watch mode, calendar and preset listings, config
// management and the interactive picker.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chronoscope/config"
	"chronoscope/logging"
	"chronoscope/scope"
)

const appVersion = "0.3.0"

// app carries state shared by every subcommand.
type app struct {
	configPath string
	out        io.Writer
	errOut     io.Writer
	now        func() time.Time
	scheduler  scope.Scheduler

	cfg    *config.Config
	logger *zap.Logger
}

// RunCLI parses args and executes the matching command.
func RunCLI(args []string) error {
	cmd := newRootCommand(&app{out: os.Stdout, errOut: os.Stderr, now: time.Now})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "chronoscope",
		Short:         "Pick, resolve and watch time ranges",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Name() == "tui")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.Version = appVersion
	root.SetVersionTemplate("chronoscope v{{.Version}}\n")
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(
		newResolveCommand(a),
		newWatchCommand(a),
		newPresetsCommand(a),
		newCalendarCommand(a),
		newThemesCommand(a),
		newConfigCommand(a),
		newTUICommand(a),
	)
	return root
}

// load reads the config and builds the logger. The TUI owns the terminal,
// so it only logs when a log file is configured.
func (a *app) load(forTUI bool) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if forTUI && cfg.Log.File == "" {
		a.logger = zap.NewNop()
		return nil
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return errors.Wrap(err, "init logging")
	}
	a.logger = logger
	return nil
}

// picker builds a ChronoScope from the loaded config. Each tweak may
// adjust the options before construction.
func (a *app) picker(onChange scope.ChangeFunc, tweaks ...func(*scope.Options)) (*scope.ChronoScope, error) {
	opts, err := a.cfg.ScopeOptions(a.now)
	if err != nil {
		return nil, err
	}
	opts.OnChange = onChange
	opts.Logger = a.logger
	opts.Pointer = scope.NewPointerBus()
	opts.Scheduler = a.scheduler
	for _, tweak := range tweaks {
		tweak(&opts)
	}
	return scope.New(opts), nil
}
