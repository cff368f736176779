package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/modules/opportunities"
)

// OpportunityScanJob runs one full evaluation cycle over the tracked
// universe. Assets are evaluated sequentially; a degraded asset yields a
// not-apt row and never aborts the cycle.
type OpportunityScanJob struct {
	evaluator *opportunities.Evaluator
	log       zerolog.Logger
}

// NewOpportunityScanJob creates the monitor scan job
func NewOpportunityScanJob(evaluator *opportunities.Evaluator, log zerolog.Logger) *OpportunityScanJob {
	return &OpportunityScanJob{
		evaluator: evaluator,
		log:       log.With().Str("job", "opportunity-scan").Logger(),
	}
}

// Name returns the job name
func (j *OpportunityScanJob) Name() string {
	return "opportunity-scan"
}

// Run evaluates all assets and logs the classification table
func (j *OpportunityScanJob) Run() error {
	results := j.evaluator.EvaluateAll()

	aptCount := 0
	for _, r := range results {
		if r.Apt {
			aptCount++
		}

		j.log.Info().
			Str("asset", string(r.Asset)).
			Bool("below_sma_30", r.BelowSMA30).
			Bool("below_sma_180", r.BelowSMA180).
			Bool("oversold", r.Oversold).
			Bool("apt", r.Apt).
			Msg("Asset evaluated")
	}

	j.log.Info().
		Int("assets", len(results)).
		Int("apt", aptCount).
		Msg("Evaluation cycle completed")

	return nil
}
