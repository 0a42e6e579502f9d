// Package config loads picker settings from YAML, the environment and an
// optional .env file.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"chronoscope/scope"
	"chronoscope/theme"
	"chronoscope/timeutil"
)

// EnvPrefix prefixes every environment override, e.g. CHRONOSCOPE_THEME.
const EnvPrefix = "CHRONOSCOPE"

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File receives logs; empty means stderr for CLI commands and no
	// logging for the TUI.
	File string `mapstructure:"file" yaml:"file"`
}

// Config is the user-facing configuration.
type Config struct {
	QuickRanges       []scope.QuickRange `mapstructure:"quick_ranges" yaml:"quick_ranges"`
	DefaultQuickLabel string             `mapstructure:"default_quick_label" yaml:"default_quick_label"`
	LiveInterval      time.Duration      `mapstructure:"live_interval" yaml:"live_interval"`

	// WeekStart is "sunday" (default) or "monday".
	WeekStart   string `mapstructure:"week_start" yaml:"week_start"`
	HourFormat  int    `mapstructure:"hour_format" yaml:"hour_format"`
	ShowSeconds bool   `mapstructure:"show_seconds" yaml:"show_seconds"`

	// MinDate and MaxDate accept anything timeutil.ParseWhen does.
	ClampToLimits bool   `mapstructure:"clamp_to_limits" yaml:"clamp_to_limits"`
	MinDate       string `mapstructure:"min_date" yaml:"min_date,omitempty"`
	MaxDate       string `mapstructure:"max_date" yaml:"max_date,omitempty"`

	Theme string    `mapstructure:"theme" yaml:"theme"`
	Log   LogConfig `mapstructure:"log" yaml:"log"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		QuickRanges:       scope.DefaultQuickRanges(),
		DefaultQuickLabel: scope.DefaultQuickLabel,
		LiveInterval:      scope.DefaultLiveInterval,
		WeekStart:         "sunday",
		HourFormat:        24,
		ShowSeconds:       true,
		Theme:             theme.Default().Name,
		Log:               LogConfig{Level: "info"},
	}
}

// Normalize fills missing values and repairs invalid ones so that partial
// or hand-edited files still produce a usable picker.
func (c *Config) Normalize() {
	if c.QuickRanges == nil {
		c.QuickRanges = scope.DefaultQuickRanges()
	}
	valid := c.QuickRanges[:0]
	for _, q := range c.QuickRanges {
		if strings.TrimSpace(q.Label) == "" || q.Value <= 0 {
			continue
		}
		unit, err := timeutil.ParseTimeUnit(string(q.Unit))
		if err != nil {
			continue
		}
		q.Unit = unit
		valid = append(valid, q)
	}
	c.QuickRanges = valid

	if c.DefaultQuickLabel == "" {
		c.DefaultQuickLabel = scope.DefaultQuickLabel
	}
	switch {
	case c.LiveInterval <= 0:
		c.LiveInterval = scope.DefaultLiveInterval
	case c.LiveInterval < time.Second:
		c.LiveInterval = time.Second
	}

	c.WeekStart = strings.ToLower(strings.TrimSpace(c.WeekStart))
	if c.WeekStart != "monday" {
		c.WeekStart = "sunday"
	}
	if c.HourFormat != 12 {
		c.HourFormat = 24
	}
	if _, ok := theme.Lookup(c.Theme); !ok {
		c.Theme = theme.Default().Name
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// WeekStartsOn maps WeekStart to a weekday.
func (c *Config) WeekStartsOn() time.Weekday {
	if c.WeekStart == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// Bounds parses MinDate and MaxDate relative to now.
func (c *Config) Bounds(now time.Time) (lo, hi *time.Time, err error) {
	parse := func(field, value string) (*time.Time, error) {
		if strings.TrimSpace(value) == "" {
			return nil, nil
		}
		t, err := timeutil.ParseWhen(value, now)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", field)
		}
		return &t, nil
	}
	if lo, err = parse("min_date", c.MinDate); err != nil {
		return nil, nil, err
	}
	if hi, err = parse("max_date", c.MaxDate); err != nil {
		return nil, nil, err
	}
	if lo != nil && hi != nil && hi.Before(*lo) {
		return nil, nil, errors.Errorf("max_date %s is before min_date %s", c.MaxDate, c.MinDate)
	}
	return lo, hi, nil
}

// ScopeOptions translates the config into picker options. Callbacks and
// the scheduler are left for the caller.
func (c *Config) ScopeOptions(now func() time.Time) (scope.Options, error) {
	if now == nil {
		now = time.Now
	}
	lo, hi, err := c.Bounds(now())
	if err != nil {
		return scope.Options{}, err
	}

	format := timeutil.FormatDateTime
	if !c.ShowSeconds {
		format = func(t time.Time) string { return t.Format("2006-01-02 15:04") }
	}

	return scope.Options{
		RangeStateOptions: scope.RangeStateOptions{
			MinDate:       lo,
			MaxDate:       hi,
			ClampToLimits: c.ClampToLimits,
			FormatDate:    format,
			Now:           now,
		},
		QuickRanges:       append([]scope.QuickRange(nil), c.QuickRanges...),
		DefaultQuickLabel: c.DefaultQuickLabel,
		LiveInterval:      c.LiveInterval,
		WeekStartsOn:      c.WeekStartsOn(),
		HourFormat:        c.HourFormat,
	}, nil
}

// DefaultPath is $XDG_CONFIG_HOME/chronoscope/config.yaml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "chronoscope", "config.yaml")
}

// Load reads .env from the working directory if present, then path (or the
// default location), then CHRONOSCOPE_* overrides. A missing default file
// is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigFile(DefaultPath())
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.Normalize()
	return &cfg, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// setDefaults registers every scalar key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("default_quick_label", d.DefaultQuickLabel)
	v.SetDefault("live_interval", d.LiveInterval)
	v.SetDefault("week_start", d.WeekStart)
	v.SetDefault("hour_format", d.HourFormat)
	v.SetDefault("show_seconds", d.ShowSeconds)
	v.SetDefault("clamp_to_limits", d.ClampToLimits)
	v.SetDefault("min_date", "")
	v.SetDefault("max_date", "")
	v.SetDefault("theme", d.Theme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Save writes cfg as YAML through a temp file and rename, with 0600
// permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	tmp, err := os.CreateTemp(dir, ".chronoscope-config-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write config")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync config")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close config")
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return errors.Wrap(err, "chmod config")
	}
	return errors.Wrap(os.Rename(tmpName, path), "rename config")
}
