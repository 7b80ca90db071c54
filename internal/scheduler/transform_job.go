package scheduler

import (
	"context"
	"time"

	"github.com/marlowequity/factorline/internal/contracts"
	"github.com/marlowequity/factorline/internal/pipeline"
	"github.com/marlowequity/factorline/pkg/logger"
)

// TransformJob runs the factor derivation pipeline for today's date on
// a cron schedule.
type TransformJob struct {
	runner        *pipeline.Runner
	schedule      string
	backfillYears int
	frequency     contracts.Frequency
	log           *logger.Logger
}

// NewTransformJob creates the scheduled derivation job.
func NewTransformJob(runner *pipeline.Runner, schedule string, backfillYears int, frequency contracts.Frequency, log *logger.Logger) *TransformJob {
	return &TransformJob{
		runner:        runner,
		schedule:      schedule,
		backfillYears: backfillYears,
		frequency:     frequency,
		log:           log,
	}
}

// Name returns the job name.
func (j *TransformJob) Name() string { return "factor_transform" }

// Schedule returns the cron expression.
func (j *TransformJob) Schedule() string { return j.schedule }

// Run executes one pipeline run dated today (UTC).
func (j *TransformJob) Run(ctx context.Context) error {
	runDate := time.Now().UTC().Truncate(24 * time.Hour)

	result, err := j.runner.Run(ctx, pipeline.Options{
		RunDate:       runDate,
		BackfillYears: j.backfillYears,
		Frequency:     j.frequency,
	})
	if err != nil {
		return err
	}

	j.log.WithFields(map[string]interface{}{
		"run_id":       result.RunID,
		"records":      result.Records,
		"rows_written": result.RowsWritten,
	}).Info("Scheduled factor transform finished")
	return nil
}
