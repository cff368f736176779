package portfolio

import (
	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// QuoteSource provides the current price for an asset, 0 when unavailable
type QuoteSource interface {
	LatestPrice(asset domain.Asset) float64
}

// Aggregator reduces purchase records into per-asset and portfolio-level
// cost/value/gain metrics using live quotes.
type Aggregator struct {
	quotes QuoteSource
	log    zerolog.Logger
}

// NewAggregator creates a new portfolio aggregator
func NewAggregator(quotes QuoteSource, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		quotes: quotes,
		log:    log.With().Str("service", "portfolio").Logger(),
	}
}

// ByAsset groups purchases by asset and values each group at the current
// quote. Exactly one quote is fetched per asset present, never one per
// record. Assets are returned in canonical universe order.
func (a *Aggregator) ByAsset(purchases []Purchase) []AssetMetrics {
	type group struct {
		quantity float64
		invested float64
	}

	groups := make(map[domain.Asset]*group)
	for _, p := range purchases {
		g, ok := groups[p.Asset]
		if !ok {
			g = &group{}
			groups[p.Asset] = g
		}
		g.quantity += p.Quantity
		g.invested += p.Amount
	}

	var metrics []AssetMetrics
	for _, asset := range domain.AllAssets() {
		g, ok := groups[asset]
		if !ok {
			continue
		}

		price := a.quotes.LatestPrice(asset)
		value := g.quantity * price
		gain := value - g.invested

		metrics = append(metrics, AssetMetrics{
			Asset:    asset,
			Quantity: g.quantity,
			Invested: g.invested,
			AvgCost:  safeRatio(g.invested, g.quantity),
			Price:    price,
			Value:    value,
			Gain:     gain,
			GainPct:  safeRatio(gain, g.invested) * 100,
		})
	}

	return metrics
}

// Total sums the per-asset metrics into portfolio-level totals.
// An empty record set yields zero-valued totals.
func (a *Aggregator) Total(purchases []Purchase) Totals {
	var totals Totals
	for _, m := range a.ByAsset(purchases) {
		totals.Invested += m.Invested
		totals.Value += m.Value
	}

	totals.Gain = totals.Value - totals.Invested
	totals.GainPct = safeRatio(totals.Gain, totals.Invested) * 100

	return totals
}

// safeRatio resolves a zero denominator to 0 instead of a division fault
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
