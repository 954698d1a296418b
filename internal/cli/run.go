package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/talgya/loom/internal/calendar"
	"github.com/talgya/loom/internal/config"
	"github.com/talgya/loom/internal/content"
	"github.com/talgya/loom/internal/engine"
	"github.com/talgya/loom/internal/planner"
	"github.com/talgya/loom/internal/store"
	"github.com/talgya/loom/internal/systems/aging"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config string
	Days   int
}

// RunSummary is the result payload printed after a run.
type RunSummary struct {
	Days        int    `json:"days"`
	FinalDate   string `json:"final_date"`
	Ticks       int64  `json:"ticks"`
	People      int    `json:"people"`
	Checkpoints int    `json:"checkpoints"`
	Content     int    `json:"content_entries"`
}

func (s RunSummary) String() string {
	return fmt.Sprintf("simulated %d day(s) to %s (%d ticks, %d people, %d checkpoints retained)",
		s.Days, s.FinalDate, s.Ticks, s.People, s.Checkpoints)
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [content-dir]",
		Short: "Run a simulation",
		Long: `Run a world simulation for a number of in-game days.

Loads configuration, optionally seeds static content from a CUE content pack,
wires the calendar, aging, and planner systems, and simulates day by day with
a report after each one.

Example:
  loom run --days 30 ./content
  loom run --config loom.yaml --days 365 --verbose`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			contentDir := ""
			if len(args) == 1 {
				contentDir = args[0]
			}
			return runSimulation(opts, contentDir, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.Flags().IntVar(&opts.Days, "days", 1, "number of in-game days to simulate")

	return cmd
}

func runSimulation(opts *RunOptions, contentDir string, cmd *cobra.Command) error {
	if opts.Days < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--days must be >= 1, got %d", opts.Days))
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	start, err := cfg.StartDate()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid start date", err)
	}

	catalog := content.NewCatalog()
	if contentDir != "" {
		slog.Info("loading content packs", "dir", contentDir)
		loaded, errs := content.LoadPacks(contentDir, content.LoadModeFailFast)
		if len(errs) > 0 {
			return WrapExitError(ExitCommandError, "failed to load content packs", errs[0])
		}
		catalog = loaded
	}

	sim := engine.New(engine.WithHistory(cfg.NewHistoryManager()))
	for _, sys := range []engine.System{
		calendar.NewSystem(start),
		aging.NewSystem(),
		planner.NewSystem(),
	} {
		if err := sim.Register(sys); err != nil {
			return WrapExitError(ExitCommandError, "failed to register system", err)
		}
	}
	for _, name := range cfg.DisabledSystems {
		if err := sim.DisableSystem(name); err != nil {
			return WrapExitError(ExitCommandError, "cannot disable system", err)
		}
		slog.Info("system disabled", "system", name)
	}

	s := store.New()
	s, events, err := catalog.Seed(s)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to seed content", err)
	}
	for _, ev := range events {
		slog.Debug("content registered", "kind", ev.Kind, "key", ev.Key)
	}

	if s, err = sim.Init(s); err != nil {
		return WrapExitError(ExitCommandError, "failed to initialize systems", err)
	}

	slog.Info("simulation starting", "start", start.String(), "days", opts.Days, "content", len(events))
	for day := 1; day <= opts.Days; day++ {
		if s, err = sim.SimulateDay(s); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("simulation failed on day %d", day), err)
		}
		s = reportDay(s, day)
	}

	// Capture the end date before Shutdown tears the calendar down.
	endDate := finalDate(s)
	if s, err = sim.Shutdown(s); err != nil {
		return WrapExitError(ExitFailure, "shutdown failed", err)
	}

	people, _ := store.TableLen[aging.Person](s)
	summary := RunSummary{
		Days:        opts.Days,
		FinalDate:   endDate,
		Ticks:       s.Tick(),
		People:      people,
		Checkpoints: sim.History().UndoCount(),
		Content:     len(events),
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(summary)
}

// reportDay logs the day's close and drops the day's messages; every system
// that cared has already seen them.
func reportDay(s store.Store, day int) store.Store {
	date, err := store.Singleton[calendar.Date](s)
	dateStr := "unknown"
	if err == nil {
		dateStr = date.String()
	}
	people, _ := store.TableLen[aging.Person](s)
	slog.Info("day complete",
		"day", day,
		"date", dateStr,
		"tick", s.Tick(),
		"people", people,
		"messages", store.MessageCount(s),
	)
	return store.ClearMessages(s)
}

func finalDate(s store.Store) string {
	date, err := store.Singleton[calendar.Date](s)
	if err != nil {
		return "unknown"
	}
	return date.String()
}
