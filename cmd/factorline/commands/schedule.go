package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/internal/engineconfig"
	"github.com/marlowequity/factorline/internal/factors"
	"github.com/marlowequity/factorline/internal/pipeline"
	"github.com/marlowequity/factorline/internal/scheduler"
	"github.com/marlowequity/factorline/internal/store"
	"github.com/marlowequity/factorline/pkg/config"
	"github.com/marlowequity/factorline/pkg/database"
	"github.com/marlowequity/factorline/pkg/logger"
)

// scheduleCmd runs the pipeline on a cron schedule
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the derivation pipeline on a cron schedule",
	Long: `Starts a long-lived process that runs the transform for the
current date on the configured cron schedule (SCHEDULE_SPEC).

Example:
  go run ./cmd/factorline schedule --frequency monthly`,
	RunE: runSchedule,
}

var (
	scheduleBackfill  int
	scheduleFrequency string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().IntVar(&scheduleBackfill, "backfill-years", 1, "years of history to recompute per run")
	scheduleCmd.Flags().StringVar(&scheduleFrequency, "frequency", "daily", "output cadence (daily|weekly|monthly|quarterly|annual)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	frequency, err := contracts.ParseFrequency(scheduleFrequency)
	if err != nil {
		return err
	}
	if scheduleBackfill < 1 {
		return fmt.Errorf("--backfill-years must be >= 1")
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

	sched := scheduler.New(log)
	job := scheduler.NewTransformJob(runner, cfg.ScheduleSpec, scheduleBackfill, frequency, log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")
	return nil
}
