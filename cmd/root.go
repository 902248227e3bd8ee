package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epidemic-sim",
	Short: "Agent-based stochastic epidemic simulator",
	Long: "Generates a synthetic population with residences and secondary contact\n" +
		"clusters, then evolves an epidemic over it in discrete daily steps.",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
