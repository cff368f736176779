package portfolio

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// fakeQuotes is an in-memory QuoteSource that counts fetches per asset
type fakeQuotes struct {
	prices map[domain.Asset]float64
	calls  map[domain.Asset]int
}

func newFakeQuotes(prices map[domain.Asset]float64) *fakeQuotes {
	return &fakeQuotes{prices: prices, calls: make(map[domain.Asset]int)}
}

func (f *fakeQuotes) LatestPrice(asset domain.Asset) float64 {
	f.calls[asset]++
	return f.prices[asset]
}

func TestAggregator_ByAsset_SinglePurchase(t *testing.T) {
	quotes := newFakeQuotes(map[domain.Asset]float64{domain.AssetBTC: 25000})
	agg := NewAggregator(quotes, zerolog.Nop())

	purchases := []Purchase{
		{Date: "2024-01-10", Asset: domain.AssetBTC, Quantity: 1, Amount: 20000},
	}

	metrics := agg.ByAsset(purchases)
	require.Len(t, metrics, 1)

	m := metrics[0]
	assert.Equal(t, domain.AssetBTC, m.Asset)
	assert.InDelta(t, 1.0, m.Quantity, 1e-9)
	assert.InDelta(t, 20000.0, m.Invested, 1e-9)
	assert.InDelta(t, 20000.0, m.AvgCost, 1e-9)
	assert.InDelta(t, 25000.0, m.Value, 1e-9)
	assert.InDelta(t, 5000.0, m.Gain, 1e-9)
	assert.InDelta(t, 25.0, m.GainPct, 1e-9)
}

func TestAggregator_ByAsset_GroupsBySymbol(t *testing.T) {
	quotes := newFakeQuotes(map[domain.Asset]float64{
		domain.AssetBTC:   30000,
		domain.AssetSP500: 5000,
	})
	agg := NewAggregator(quotes, zerolog.Nop())

	purchases := []Purchase{
		{Date: "2024-01-10", Asset: domain.AssetBTC, Quantity: 0.5, Amount: 10000},
		{Date: "2024-02-15", Asset: domain.AssetSP500, Quantity: 2, Amount: 9000},
		{Date: "2024-03-20", Asset: domain.AssetBTC, Quantity: 0.5, Amount: 14000},
	}

	metrics := agg.ByAsset(purchases)
	require.Len(t, metrics, 2)

	// Canonical universe order: BTC before SP500
	btc := metrics[0]
	assert.Equal(t, domain.AssetBTC, btc.Asset)
	assert.InDelta(t, 1.0, btc.Quantity, 1e-9)
	assert.InDelta(t, 24000.0, btc.Invested, 1e-9)
	assert.InDelta(t, 24000.0, btc.AvgCost, 1e-9)
	assert.InDelta(t, 30000.0, btc.Value, 1e-9)

	sp := metrics[1]
	assert.Equal(t, domain.AssetSP500, sp.Asset)
	assert.InDelta(t, 10000.0, sp.Value, 1e-9)
}

func TestAggregator_ByAsset_OneQuotePerAsset(t *testing.T) {
	quotes := newFakeQuotes(map[domain.Asset]float64{domain.AssetBTC: 30000})
	agg := NewAggregator(quotes, zerolog.Nop())

	purchases := []Purchase{
		{Asset: domain.AssetBTC, Quantity: 1, Amount: 100},
		{Asset: domain.AssetBTC, Quantity: 1, Amount: 100},
		{Asset: domain.AssetBTC, Quantity: 1, Amount: 100},
	}

	agg.ByAsset(purchases)

	assert.Equal(t, 1, quotes.calls[domain.AssetBTC], "one quote fetch per asset, not per record")
}

func TestAggregator_ByAsset_ZeroQuantityNoDivisionFault(t *testing.T) {
	quotes := newFakeQuotes(map[domain.Asset]float64{domain.AssetGold: 2000})
	agg := NewAggregator(quotes, zerolog.Nop())

	// Fully offset by a correction entry
	purchases := []Purchase{
		{Asset: domain.AssetGold, Quantity: 1, Amount: 1000},
		{Asset: domain.AssetGold, Quantity: -1, Amount: -1000},
	}

	metrics := agg.ByAsset(purchases)
	require.Len(t, metrics, 1)
	assert.Equal(t, 0.0, metrics[0].AvgCost)
	assert.Equal(t, 0.0, metrics[0].GainPct)
}

func TestAggregator_ByAsset_UnavailableQuote(t *testing.T) {
	// Quote source returns the 0 sentinel: value collapses to 0 and the
	// whole invested amount shows as unrealized loss
	quotes := newFakeQuotes(map[domain.Asset]float64{})
	agg := NewAggregator(quotes, zerolog.Nop())

	purchases := []Purchase{
		{Asset: domain.AssetBTC, Quantity: 2, Amount: 40000},
	}

	metrics := agg.ByAsset(purchases)
	require.Len(t, metrics, 1)
	assert.Equal(t, 0.0, metrics[0].Value)
	assert.InDelta(t, -40000.0, metrics[0].Gain, 1e-9)
	assert.InDelta(t, -100.0, metrics[0].GainPct, 1e-9)
}

func TestAggregator_ByAsset_Deterministic(t *testing.T) {
	quotes := newFakeQuotes(map[domain.Asset]float64{
		domain.AssetBTC:  30000,
		domain.AssetGold: 2000,
	})
	agg := NewAggregator(quotes, zerolog.Nop())

	purchases := []Purchase{
		{Asset: domain.AssetGold, Quantity: 3, Amount: 5500},
		{Asset: domain.AssetBTC, Quantity: 0.25, Amount: 7000},
	}

	first := agg.ByAsset(purchases)
	second := agg.ByAsset(purchases)

	assert.Equal(t, first, second, "aggregation is a pure function of its input")
}

func TestAggregator_Total(t *testing.T) {
	quotes := newFakeQuotes(map[domain.Asset]float64{
		domain.AssetBTC:   30000,
		domain.AssetSP500: 6000,
	})
	agg := NewAggregator(quotes, zerolog.Nop())

	purchases := []Purchase{
		{Asset: domain.AssetBTC, Quantity: 1, Amount: 20000},
		{Asset: domain.AssetSP500, Quantity: 1, Amount: 5000},
	}

	totals := agg.Total(purchases)
	assert.InDelta(t, 25000.0, totals.Invested, 1e-9)
	assert.InDelta(t, 36000.0, totals.Value, 1e-9)
	assert.InDelta(t, 11000.0, totals.Gain, 1e-9)
	assert.InDelta(t, 44.0, totals.GainPct, 1e-9)
}

func TestAggregator_Total_EmptyPortfolio(t *testing.T) {
	agg := NewAggregator(newFakeQuotes(nil), zerolog.Nop())

	totals := agg.Total(nil)
	assert.Equal(t, Totals{}, totals)
}
