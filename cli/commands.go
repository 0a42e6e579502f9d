package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"chronoscope/calendar"
	"chronoscope/config"
	"chronoscope/export"
	"chronoscope/scope"
	"chronoscope/theme"
	"chronoscope/timeutil"
	"chronoscope/tui"
	"chronoscope/tui/components"
)

func newResolveCommand(a *app) *cobra.Command {
	var from, to, format string
	cmd := &cobra.Command{
		Use:   "resolve [preset|expression]",
		Short: "Print the range a preset, relative expression or --from/--to resolves to",
		Example: `  chronoscope resolve "Last 24 hours"
  chronoscope resolve 90m --format json
  chronoscope resolve --from "2024-06-01 08:00" --to 17:30 --format ics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.CommandResolve(firstArg(args), from, to, format)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "absolute start (YYYY-MM-DD HH:MM[:SS] or HH:MM)")
	cmd.Flags().StringVar(&to, "to", "", "absolute end (YYYY-MM-DD HH:MM[:SS] or HH:MM)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml or ics")
	return cmd
}

func newWatchCommand(a *app) *cobra.Command {
	var (
		interval time.Duration
		count    int
		format   string
	)
	cmd := &cobra.Command{
		Use:   "watch [preset|expression]",
		Short: "Keep a relative range sliding with now and print every refresh",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.CommandWatch(ctx, firstArg(args), interval, count, format)
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "refresh interval (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many refreshes (0 runs until interrupted)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml or ics")
	return cmd
}

func newPresetsCommand(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the quick range presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.CommandPresets(filter)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only show presets whose label contains this text")
	return cmd
}

func newCalendarCommand(a *app) *cobra.Command {
	var (
		year, month int
		weekStart   string
	)
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.CommandCalendar(year, month, weekStart)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default current)")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "sunday or monday (default from config)")
	return cmd
}

func newThemesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List built-in themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.Names() {
				marker := "  "
				if name == a.cfg.Theme {
					marker = "* "
				}
				fmt.Fprintln(a.out, marker+name)
			}
			return nil
		},
	}
}

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config",
		Args:  cobra.NoArgs,
		// The file may not exist yet, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.CommandConfigInit(force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return errors.Wrap(err, "encode config")
			}
			_, err = a.out.Write(data)
			return err
		},
	}

	pathCmd := &cobra.Command{
		Use:               "path",
		Short:             "Print the config file location",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, a.path())
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd, pathCmd)
	return cmd
}

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive range picker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.LaunchTUI(a.cfg, a.logger)
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (a *app) path() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultPath()
}

// CommandResolve prints the range target resolves to. With no target and
// no --from/--to it prints the configured default range.
func (a *app) CommandResolve(target, from, to, format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	var (
		picker *scope.ChronoScope
		got    *export.Record
	)
	picker, err = a.picker(func(r timeutil.TimeRange, meta scope.ChangeMeta) {
		rec := export.NewRecord(r, picker.Range.DisplayLabel(), meta)
		got = &rec
	})
	if err != nil {
		return err
	}
	defer picker.Close()

	if err := a.apply(picker, target, from, to); err != nil {
		return err
	}
	if got == nil {
		rec := a.current(picker)
		got = &rec
	}
	return export.Write(a.out, *got, f)
}

// CommandWatch selects target, turns live refresh on and prints every
// change until ctx ends or count refreshes have been printed.
func (a *app) CommandWatch(ctx context.Context, target string, interval time.Duration, count int, format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if interval != 0 && interval < time.Second {
		return errors.Errorf("interval must be at least 1s, got %s", interval)
	}

	var (
		mu        sync.Mutex
		refreshes int
		done      = make(chan struct{})
		picker    *scope.ChronoScope
	)
	write := func(rec export.Record) {
		if err := export.Write(a.out, rec, f); err != nil {
			a.logger.Warn("write refresh", zap.Error(err))
		}
	}

	picker, err = a.picker(func(r timeutil.TimeRange, meta scope.ChangeMeta) {
		mu.Lock()
		defer mu.Unlock()
		if count > 0 && refreshes >= count {
			return
		}
		write(export.NewRecord(r, picker.Range.DisplayLabel(), meta))
		if meta.Source != scope.SourceLive {
			return
		}
		refreshes++
		if count > 0 && refreshes == count {
			close(done)
		}
	}, func(o *scope.Options) {
		if interval > 0 {
			o.LiveInterval = interval
		}
	})
	if err != nil {
		return err
	}
	defer picker.Close()

	if err := a.apply(picker, target, "", ""); err != nil {
		return err
	}
	if target == "" {
		mu.Lock()
		write(a.current(picker))
		mu.Unlock()
	}

	a.logger.Debug("watch started",
		zap.String("label", picker.Range.DisplayLabel()),
		zap.Duration("interval", picker.Live.Interval()),
	)
	picker.Live.SetLive(true)

	select {
	case <-ctx.Done():
	case <-done:
	}
	picker.Live.SetLive(false)
	return nil
}

// CommandPresets lists presets grouped as the picker shows them.
func (a *app) CommandPresets(filter string) error {
	picker, err := a.picker(nil)
	if err != nil {
		return err
	}
	defer picker.Close()

	picker.Quick.SetFilter(filter)
	groups := picker.Quick.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "No matching ranges.")
		return nil
	}

	active, _ := picker.Quick.ActiveLabel()
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		if g.Name != "" {
			fmt.Fprintln(a.out, g.Name)
		}
		for _, q := range g.Ranges {
			marker := " "
			if q.Label == active {
				marker = "*"
			}
			fmt.Fprintf(a.out, "%s %-20s %s\n", marker, q.Label, q.Expression())
		}
	}
	return nil
}

// CommandCalendar prints one month. Zero year or month means the current one.
func (a *app) CommandCalendar(year, month int, weekStart string) error {
	now := a.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return errors.Errorf("month must be 1-12, got %d", month)
	}

	ws := a.cfg.WeekStartsOn()
	switch strings.ToLower(strings.TrimSpace(weekStart)) {
	case "":
	case "sunday":
		ws = time.Sunday
	case "monday":
		ws = time.Monday
	default:
		return errors.Errorf("week start must be sunday or monday, got %q", weekStart)
	}

	cal := calendar.New(calendar.Options{Selected: &now, WeekStartsOn: ws, Now: a.now})
	cal.GoToMonth(year, time.Month(month))

	th, ok := theme.Lookup(a.cfg.Theme)
	if !ok {
		th = theme.Default()
	}
	fmt.Fprintln(a.out, components.RenderCalendar("", cal, 0, false, th))
	return nil
}

// CommandConfigInit writes the default config, refusing to overwrite
// unless force is set.
func (a *app) CommandConfigInit(force bool) error {
	path := a.path()
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}

// apply commits target or the from/to pair through the picker so that the
// matching change notification fires.
func (a *app) apply(picker *scope.ChronoScope, target, from, to string) error {
	if from != "" || to != "" {
		if target != "" {
			return errors.New("give either a preset/expression or --from/--to, not both")
		}
		now := a.now()
		if from != "" {
			t, err := timeutil.ParseWhen(from, now)
			if err != nil {
				return errors.Wrap(err, "--from")
			}
			picker.Range.SetFrom(t)
		}
		if to != "" {
			t, err := timeutil.ParseWhen(to, now)
			if err != nil {
				return errors.Wrap(err, "--to")
			}
			picker.Range.SetTo(t)
		}
		if r := picker.Range.Range(); !r.To.After(r.From) {
			return errors.Errorf("end %s must be after start %s",
				timeutil.FormatDateTime(r.To), timeutil.FormatDateTime(r.From))
		}
		picker.ApplyAbsolute()
		return nil
	}

	if target == "" {
		return nil
	}
	if q, ok := findPreset(picker.Quick, target); ok {
		picker.Quick.Select(q)
		return nil
	}
	n, unit, err := timeutil.ParseRelativeExpression(target)
	if err != nil {
		return errors.Errorf("%q is neither a preset label nor a relative expression such as 15m or 2d", target)
	}
	picker.Relative.SetValue(strconv.Itoa(n))
	picker.Relative.SetUnit(unit)
	picker.Relative.Apply()
	return nil
}

// current describes the picker's range without a change having fired.
func (a *app) current(picker *scope.ChronoScope) export.Record {
	var meta scope.ChangeMeta
	if label, ok := picker.Quick.ActiveLabel(); ok {
		meta = scope.ChangeMeta{Source: scope.SourceQuick, QuickLabel: label}
	}
	return export.NewRecord(picker.Range.Range(), picker.Range.DisplayLabel(), meta)
}

// findPreset matches a label exactly, then ignoring case.
func findPreset(q *scope.QuickRanges, label string) (scope.QuickRange, bool) {
	if r, ok := q.Find(label); ok {
		return r, true
	}
	for _, r := range q.Ranges() {
		if strings.EqualFold(r.Label, strings.TrimSpace(label)) {
			return r, true
		}
	}
	return scope.QuickRange{}, false
}
