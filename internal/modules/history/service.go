package history

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/events"
	"github.com/ariel-pastor/proyecto-jubilacion/pkg/formulas"
)

// Trend summarizes the evolution of the snapshot sequence for the
// presentation layer's chart. Rendering itself happens elsewhere.
type Trend struct {
	Points      int     `json:"points"`
	Mean        float64 `json:"mean"`
	SlopePerDay float64 `json:"slope_per_day"` // Fitted value change per day
	ChangePct   float64 `json:"change_pct"`    // First snapshot to last
}

// Recorder appends portfolio value snapshots and derives trend statistics
type Recorder struct {
	store  *Store
	events *events.Manager
	log    zerolog.Logger
}

// NewRecorder creates a new history recorder
func NewRecorder(store *Store, eventManager *events.Manager, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:  store,
		events: eventManager,
		log:    log.With().Str("service", "history").Logger(),
	}
}

// Record appends a snapshot of the given total value dated now
func (r *Recorder) Record(totalValue float64) error {
	snapshot := Snapshot{
		Date:  time.Now().Format("2006-01-02"),
		Value: totalValue,
	}

	if err := r.store.Append(snapshot); err != nil {
		return err
	}

	r.events.Emit(events.SnapshotRecorded, "history", map[string]interface{}{
		"date":  snapshot.Date,
		"value": snapshot.Value,
	})

	return nil
}

// All returns the full ordered snapshot sequence
func (r *Recorder) All() []Snapshot {
	return r.store.All()
}

// Trend fits a least squares line through the snapshot values over time.
// Snapshots with unparseable dates are skipped.
func (r *Recorder) Trend() Trend {
	snapshots := r.store.All()

	var xs, ys []float64
	var origin time.Time
	for _, s := range snapshots {
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			continue
		}
		if origin.IsZero() {
			origin = date
		}
		xs = append(xs, date.Sub(origin).Hours()/24)
		ys = append(ys, s.Value)
	}

	trend := Trend{Points: len(ys)}
	if len(ys) == 0 {
		return trend
	}

	trend.Mean = formulas.Mean(ys)

	_, slope := formulas.LinearTrend(xs, ys)
	trend.SlopePerDay = slope

	if first := ys[0]; first != 0 {
		trend.ChangePct = (ys[len(ys)-1] - first) / first * 100
	}

	return trend
}
