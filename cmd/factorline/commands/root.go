package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "factorline",
	Short: "Point-in-time factor derivation pipeline",
	Long: `factorline derives final equity factors (valuation ratios,
leverage ratios, technical indicators, news aggregates) from atomic
observations, with as-of joins and staleness control.

Usage:
  go run ./cmd/factorline [command]

Examples:
  go run ./cmd/factorline transform --run-date 2026-08-31 --backfill-years 1
  go run ./cmd/factorline transform --frequency monthly --dry-run
  go run ./cmd/factorline schedule`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every stale/expired quality event")
}
