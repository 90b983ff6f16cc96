// Package cmd provides the CLI commands for housecost.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/housecost/internal/logging"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "housecost",
	Short: "Estimate residential construction cost",
	Long: `housecost converts building dimensions and site conditions into a
converted area and prices it in three packages (eco, standard, lux).

Examples:
  housecost estimate --width 5 --length 20 --floors 2
  housecost estimate -f house.yaml --format json
  housecost prices`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger = logging.New(logging.Config{Level: level, Format: "console"})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync(logger)
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newPricesCmd())
}
