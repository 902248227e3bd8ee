package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

var (
	// Scenario flags shared by `run` and `ensemble`
	seed                int64   // Master seed deriving every subsystem stream
	logLevel            string  // Log verbosity level
	scenarioFile        string  // YAML file holding named scenario presets
	scenarioName        string  // Preset name to load from the scenario file
	population          int     // Total number of individuals
	gridRows            int     // Rows of the spatial block grid
	gridCols            int     // Columns of the spatial block grid
	steps               int     // Simulated steps including the initial snapshot
	stepDays            float64 // Duration of one step in days
	initialExposed      []int   // Explicit indices seeded exposed at step 1
	initialExposedCount int     // Number of uniformly drawn initial exposures
	progressEvery       int     // Steps between progress log lines (0 disables)
	workers             int     // Goroutines for the hazard composition pass

	// CLI flags specific to `run`
	summaryOut string // CSV path for the per-step compartment counts
)

// runCmd generates one scenario and evolves it using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a scenario and run the epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := resolveConfig(cmd.Flags())
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation: %d individuals on a %dx%d grid, %d steps, seed=%d",
			cfg.Population, cfg.Grid.Rows, cfg.Grid.Cols, cfg.Run.Steps, seed)
		startTime := time.Now()

		s, err := sim.NewSimulator(cfg, sim.NewSimulationKey(seed))
		if err != nil {
			logrus.Fatalf("Scenario generation failed: %v", err)
		}
		history, err := s.Evolve(context.Background())
		if err != nil {
			logrus.Fatalf("Evolution failed: %v", err)
		}

		summary := sim.Summarize(history)
		sim.BuildReport(summary).Print()

		if summaryOut != "" {
			if err := exportSummary(summaryOut, summary); err != nil {
				logrus.Fatalf("Summary export failed: %v", err)
			}
			logrus.Infof("Wrote per-step compartment counts to %s", summaryOut)
		}

		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// resolveConfig builds the effective configuration: the named preset when a
// scenario file is given, DefaultConfig otherwise, with explicitly set flags
// overriding either base.
func resolveConfig(flags *pflag.FlagSet) sim.Config {
	cfg := sim.DefaultConfig()
	if scenarioFile != "" {
		loaded, err := loadScenario(scenarioFile, scenarioName)
		if err != nil {
			logrus.Fatalf("Scenario preset load failed: %v", err)
		}
		cfg = loaded
	} else if scenarioName != "" {
		logrus.Fatalf("--scenario requires --scenario-file")
	}
	applyFlagOverrides(flags, &cfg)
	return cfg
}

// applyFlagOverrides copies every explicitly set scenario flag over the base
// configuration. Flags left at their defaults never touch the base, so a
// preset keeps its values unless the user overrides them.
func applyFlagOverrides(flags *pflag.FlagSet, cfg *sim.Config) {
	if flags.Changed("population") {
		cfg.Population = population
	}
	if flags.Changed("grid-rows") {
		cfg.Grid.Rows = gridRows
	}
	if flags.Changed("grid-cols") {
		cfg.Grid.Cols = gridCols
	}
	if flags.Changed("steps") {
		cfg.Run.Steps = steps
	}
	if flags.Changed("step-days") {
		cfg.Run.StepDays = stepDays
	}
	if flags.Changed("progress-every") {
		cfg.Run.ProgressEvery = progressEvery
	}
	if flags.Changed("workers") {
		cfg.Run.Workers = workers
	}

	// Seeding an explicit index list displaces a preset's sampled count and
	// vice versa; passing both explicitly is left for Validate to reject.
	if flags.Changed("initial-exposed") {
		cfg.Run.InitialExposed = initialExposed
		if !flags.Changed("initial-exposed-count") {
			cfg.Run.InitialExposedCount = 0
		}
	}
	if flags.Changed("initial-exposed-count") {
		cfg.Run.InitialExposedCount = initialExposedCount
		if !flags.Changed("initial-exposed") {
			cfg.Run.InitialExposed = nil
		}
	}
}

// addScenarioFlags registers the flags shared by every simulating command.
// Flag defaults mirror DefaultConfig so `--help` shows the effective values.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all random draws")
	cmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML file with named scenario presets")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Preset name inside --scenario-file")
	cmd.Flags().IntVar(&population, "population", 10000, "Total number of individuals")
	cmd.Flags().IntVar(&gridRows, "grid-rows", 5, "Rows of the spatial block grid")
	cmd.Flags().IntVar(&gridCols, "grid-cols", 5, "Columns of the spatial block grid")
	cmd.Flags().IntVar(&steps, "steps", 120, "Number of simulated steps (including the initial snapshot)")
	cmd.Flags().Float64Var(&stepDays, "step-days", 1.0, "Duration of one step in days")
	cmd.Flags().IntSliceVar(&initialExposed, "initial-exposed", nil, "Comma-separated individual indices seeded exposed at step 1")
	cmd.Flags().IntVar(&initialExposedCount, "initial-exposed-count", 5, "Number of uniformly drawn initial exposures")
	cmd.Flags().IntVar(&progressEvery, "progress-every", 10, "Steps between progress log lines (0 disables)")
	cmd.Flags().IntVar(&workers, "workers", 1, "Goroutines composing per-individual hazards")
}

// init sets up CLI flags and attaches `run` to `root`
func init() {
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&summaryOut, "summary-out", "", "Write per-step compartment counts to this CSV file")
	rootCmd.AddCommand(runCmd)
}
