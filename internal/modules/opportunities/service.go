package opportunities

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/events"
	"github.com/ariel-pastor/proyecto-jubilacion/pkg/formulas"
)

// SeriesSource provides historical closes for an asset, oldest first
type SeriesSource interface {
	PriceSeries(asset domain.Asset, lookbackDays int) domain.PriceSeries
}

// AuditLog records detected opportunities, append-only
type AuditLog interface {
	Record(asset string, price float64, at time.Time) error
}

// Evaluator classifies each tracked asset as apt for purchase or not.
// An asset is apt when the latest close sits below both moving averages and
// the RSI signals oversold. Each evaluation cycle is independent, no state
// carries over other than the external logbook.
type Evaluator struct {
	series    SeriesSource
	logbook   AuditLog
	events    *events.Manager
	threshold float64
	log       zerolog.Logger
}

// NewEvaluator creates a new opportunity evaluator
func NewEvaluator(series SeriesSource, logbook AuditLog, eventManager *events.Manager, threshold float64, log zerolog.Logger) *Evaluator {
	if threshold <= 0 {
		threshold = DefaultOversoldThreshold
	}

	return &Evaluator{
		series:    series,
		logbook:   logbook,
		events:    eventManager,
		threshold: threshold,
		log:       log.With().Str("module", "opportunities").Logger(),
	}
}

// Evaluate classifies a single asset. Fetch failures and undefined
// indicators collapse to an all-false result, never to an error: "no data"
// is conservatively "no opportunity".
func (e *Evaluator) Evaluate(asset domain.Asset) Result {
	snapshot := e.indicators(asset)
	result := e.classify(snapshot)

	if result.Apt {
		e.recordDetection(asset, snapshot.Price)
	}

	return result
}

// classify applies the three buy conditions to an indicator snapshot.
// An undefined indicator makes its condition false, and a missing price
// makes the whole result false.
func (e *Evaluator) classify(snapshot IndicatorSnapshot) Result {
	result := Result{Asset: snapshot.Asset}
	if snapshot.Price <= 0 {
		return result
	}

	if snapshot.SMA30 != nil {
		result.BelowSMA30 = snapshot.Price < *snapshot.SMA30
	}
	if snapshot.SMA180 != nil {
		result.BelowSMA180 = snapshot.Price < *snapshot.SMA180
	}
	if snapshot.RSI != nil {
		result.Oversold = *snapshot.RSI < e.threshold
	}

	result.Apt = result.BelowSMA30 && result.BelowSMA180 && result.Oversold

	return result
}

// EvaluateAll evaluates the whole tracked universe in canonical order.
// One asset's degraded data never affects the others in the same cycle.
func (e *Evaluator) EvaluateAll() []Result {
	assets := domain.AllAssets()

	results := make([]Result, 0, len(assets))
	for _, asset := range assets {
		results = append(results, e.Evaluate(asset))
	}

	return results
}

// indicators fetches the price series and computes the indicator snapshot
func (e *Evaluator) indicators(asset domain.Asset) IndicatorSnapshot {
	series := e.series.PriceSeries(asset, lookbackDays)
	closes := series.Closes()

	snapshot := IndicatorSnapshot{
		Asset:  asset,
		SMA30:  formulas.SMA(closes, smaShortWindow),
		SMA180: formulas.SMA(closes, smaLongWindow),
		RSI:    formulas.RSI(closes, rsiWindow),
		Price:  series.Latest(),
	}

	if len(closes) < smaLongWindow {
		e.log.Debug().
			Str("asset", string(asset)).
			Int("points", len(closes)).
			Msg("Insufficient history for long moving average")
	}

	return snapshot
}

// recordDetection appends exactly one logbook line per apt asset per cycle
func (e *Evaluator) recordDetection(asset domain.Asset, price float64) {
	now := time.Now()

	if err := e.logbook.Record(string(asset), price, now); err != nil {
		e.log.Error().Err(err).Str("asset", string(asset)).Msg("Failed to record opportunity")
	}

	e.events.Emit(events.OpportunityDetected, "opportunities", map[string]interface{}{
		"asset": string(asset),
		"price": price,
	})

	e.log.Info().
		Str("asset", string(asset)).
		Float64("price", price).
		Msg("Buy opportunity detected")
}
