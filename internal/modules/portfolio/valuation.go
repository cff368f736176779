package portfolio

// Valuation binds the store and aggregator for consumers that only need
// the current total portfolio value (history snapshots, scheduled jobs).
type Valuation struct {
	store      *Store
	aggregator *Aggregator
}

// NewValuation creates a new portfolio valuation
func NewValuation(store *Store, aggregator *Aggregator) *Valuation {
	return &Valuation{store: store, aggregator: aggregator}
}

// CurrentTotalValue aggregates all purchases at current quotes
func (v *Valuation) CurrentTotalValue() float64 {
	return v.aggregator.Total(v.store.Load()).Value
}
