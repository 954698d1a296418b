// Package config loads runtime settings for the loom CLI from a YAML file
// with environment-variable overrides. Precedence: defaults, then file, then
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/history"
)

// ErrInvalidConfig indicates a config that parsed but fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// History bounds for the time-travel manager.
type History struct {
	MaxUndo          int `yaml:"max_undo" env:"MAX_UNDO"`
	MonthlySnapshots int `yaml:"monthly_snapshots" env:"MONTHLY_SNAPSHOTS"`
	YearlySnapshots  int `yaml:"yearly_snapshots" env:"YEARLY_SNAPSHOTS"`
}

// Start is the world's opening calendar date.
type Start struct {
	Year  int `yaml:"year" env:"YEAR"`
	Month int `yaml:"month" env:"MONTH"`
	Day   int `yaml:"day" env:"DAY"`
}

// Config is the full runtime configuration.
type Config struct {
	History         History  `yaml:"history" envPrefix:"LOOM_HISTORY_"`
	Start           Start    `yaml:"start" envPrefix:"LOOM_START_"`
	DisabledSystems []string `yaml:"disabled_systems" env:"LOOM_DISABLED_SYSTEMS" envSeparator:","`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		History: History{
			MaxUndo:          history.DefaultMaxHistory,
			MonthlySnapshots: history.DefaultMaxMonthlySnapshots,
			YearlySnapshots:  history.DefaultMaxYearlySnapshots,
		},
		Start: Start{Year: 1, Month: 1, Day: 1},
	}
}

// Load builds a Config from defaults, the optional YAML file at path (empty
// path skips the file), and environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks bounds and the start date.
func (c Config) Validate() error {
	if c.History.MaxUndo < 1 {
		return fmt.Errorf("%w: history.max_undo must be >= 1, got %d", ErrInvalidConfig, c.History.MaxUndo)
	}
	if c.History.MonthlySnapshots < 1 {
		return fmt.Errorf("%w: history.monthly_snapshots must be >= 1, got %d", ErrInvalidConfig, c.History.MonthlySnapshots)
	}
	if c.History.YearlySnapshots < 1 {
		return fmt.Errorf("%w: history.yearly_snapshots must be >= 1, got %d", ErrInvalidConfig, c.History.YearlySnapshots)
	}
	if _, err := c.StartDate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// StartDate converts the start fields into a calendar date.
func (c Config) StartDate() (calendar.Date, error) {
	return calendar.NewDate(c.Start.Year, c.Start.Month, c.Start.Day)
}

// NewHistoryManager builds a history manager honoring the configured bounds.
func (c Config) NewHistoryManager() *history.Manager {
	return history.NewManager(
		history.WithMaxHistory(c.History.MaxUndo),
		history.WithMaxMonthlySnapshots(c.History.MonthlySnapshots),
		history.WithMaxYearlySnapshots(c.History.YearlySnapshots),
	)
}
