package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/modules/history"
)

// ValueSnapshotJob appends a daily snapshot of the total portfolio value
// to the history store for later trend display.
type ValueSnapshotJob struct {
	recorder *history.Recorder
	value    history.ValueSource
	log      zerolog.Logger
}

// NewValueSnapshotJob creates the daily snapshot job
func NewValueSnapshotJob(recorder *history.Recorder, value history.ValueSource, log zerolog.Logger) *ValueSnapshotJob {
	return &ValueSnapshotJob{
		recorder: recorder,
		value:    value,
		log:      log.With().Str("job", "value-snapshot").Logger(),
	}
}

// Name returns the job name
func (j *ValueSnapshotJob) Name() string {
	return "value-snapshot"
}

// Run values the portfolio at current quotes and appends a snapshot
func (j *ValueSnapshotJob) Run() error {
	totalValue := j.value.CurrentTotalValue()

	if err := j.recorder.Record(totalValue); err != nil {
		return err
	}

	j.log.Info().Float64("value", totalValue).Msg("Portfolio value snapshot recorded")
	return nil
}
