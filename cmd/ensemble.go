package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

var ensembleRuns int // Number of independent replicates

// ensembleCmd runs N replicates of one configuration under consecutive
// seeds and reports the spread of their outcomes
var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Run independent replicates and report the outcome spread",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := resolveConfig(cmd.Flags())
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting ensemble: %d replicates of %d individuals, seeds %d..%d",
			ensembleRuns, cfg.Population, seed, seed+int64(ensembleRuns)-1)
		startTime := time.Now()

		ens := sim.Ensemble{Config: cfg, Runs: ensembleRuns, SeedStart: seed}
		reports, err := ens.Run(context.Background())
		if err != nil {
			logrus.Fatalf("Ensemble failed: %v", err)
		}

		printEnsembleReports(os.Stdout, seed, reports)
		logrus.Infof("Ensemble complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// printEnsembleReports writes one line per replicate plus the ensemble mean.
func printEnsembleReports(w io.Writer, seedStart int64, reports []*sim.Report) {
	fmt.Fprintln(w, "=== Ensemble Report ===")
	for i, r := range reports {
		fmt.Fprintf(w, "replicate %3d (seed %d): attack rate %6.2f%%, peak %d at step %d, deceased %d\n",
			i, seedStart+int64(i), 100*r.AttackRate, r.PeakInfectious, r.PeakStep, r.FinalDeceased)
	}
	fmt.Fprintf(w, "mean attack rate: %.2f%% across %d replicates\n",
		100*sim.MeanAttackRate(reports), len(reports))
}

// init sets up CLI flags and attaches `ensemble` to `root`
func init() {
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 10, "Number of replicates (seeds seed..seed+runs-1)")
	rootCmd.AddCommand(ensembleCmd)
}
