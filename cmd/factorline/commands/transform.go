package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/internal/engineconfig"
	"github.com/marlowequity/factorline/internal/factors"
	"github.com/marlowequity/factorline/internal/pipeline"
	"github.com/marlowequity/factorline/internal/store"
	"github.com/marlowequity/factorline/pkg/config"
	"github.com/marlowequity/factorline/pkg/database"
	"github.com/marlowequity/factorline/pkg/logger"
)

// transformCmd runs one factor derivation pipeline pass
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Derive final factors from atomic observations",
	Long: `Pulls atomic observations for the run window, derives all final
factors, applies outlier capping and output-frequency sampling, and
upserts the results.

Example:
  go run ./cmd/factorline transform --run-date 2026-08-31 --backfill-years 1
  go run ./cmd/factorline transform --symbols AAPL,MSFT --dry-run`,
	RunE: runTransform,
}

var (
	// Transform flags
	transformRunDate   string
	transformBackfill  int
	transformFrequency string
	transformSymbols   string
	transformDryRun    bool
)

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVar(&transformRunDate, "run-date", "", "run date as YYYY-MM-DD (default today, UTC)")
	transformCmd.Flags().IntVar(&transformBackfill, "backfill-years", 1, "years of history to recompute")
	transformCmd.Flags().StringVar(&transformFrequency, "frequency", "daily", "output cadence (daily|weekly|monthly|quarterly|annual)")
	transformCmd.Flags().StringVar(&transformSymbols, "symbols", "", "comma-separated symbol filter (default: whole universe)")
	transformCmd.Flags().BoolVar(&transformDryRun, "dry-run", false, "validate and count without writing")
}

func runTransform(cmd *cobra.Command, args []string) error {
	opts, err := parseTransformOptions()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	engineCfg, err := engineconfig.LoadOrDefault(cfg.EngineConfigPath)
	if err != nil {
		return fmt.Errorf("load engine config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	factorCfg := engineCfg.ToEngine()
	factorCfg.Verbose = verbose

	runner := pipeline.NewRunner(
		store.NewAtomicReader(db.Pool, cfg.Database.Schema),
		store.NewFactorWriter(db.Pool, cfg.Database.Schema, log),
		store.NewRunAudit(db.Pool, cfg.Database.Schema),
		factors.NewEngine(factorCfg, log),
		log,
	)

	result, err := runner.Run(context.Background(), opts)
	if err != nil {
		log.WithError(err).Error("Transform run failed")
		return err
	}

	fmt.Printf("run_id:       %s\n", result.RunID)
	fmt.Printf("records:      %d\n", result.Records)
	fmt.Printf("rows_written: %d\n", result.RowsWritten)
	fmt.Printf("quality:      passed=%v duplicates=%d\n", result.Quality.Passed, result.Quality.Duplicates)
	return nil
}

// parseTransformOptions validates CLI input. Malformed dates and
// unknown frequencies fail fast here.
func parseTransformOptions() (pipeline.Options, error) {
	runDate := time.Now().UTC().Truncate(24 * time.Hour)
	if transformRunDate != "" {
		parsed, err := time.Parse("2006-01-02", transformRunDate)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("invalid --run-date %q, expected YYYY-MM-DD", transformRunDate)
		}
		runDate = parsed
	}

	frequency, err := contracts.ParseFrequency(transformFrequency)
	if err != nil {
		return pipeline.Options{}, err
	}

	if transformBackfill < 1 {
		return pipeline.Options{}, fmt.Errorf("--backfill-years must be >= 1")
	}

	return pipeline.Options{
		RunDate:       runDate,
		BackfillYears: transformBackfill,
		Frequency:     frequency,
		Symbols:       parseSymbolList(transformSymbols),
		DryRun:        transformDryRun,
	}, nil
}

// parseSymbolList splits a comma-separated list into upper-cased,
// de-duplicated symbols.
func parseSymbolList(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, item := range strings.Split(raw, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(item))
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}
