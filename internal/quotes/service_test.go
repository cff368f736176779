package quotes

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/clients/yahoo"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// fakeChartClient simulates the Yahoo client per range/days
type fakeChartClient struct {
	latestByRange map[string]float64
	latestErr     error
	closes        []yahoo.HistoricalPrice
	closesErr     error
	requestedDays []int
}

func (f *fakeChartClient) GetLatestClose(symbol, dataRange string) (float64, error) {
	if f.latestErr != nil {
		return 0, f.latestErr
	}
	price, ok := f.latestByRange[dataRange]
	if !ok {
		return 0, fmt.Errorf("no close data returned for symbol %s", symbol)
	}
	return price, nil
}

func (f *fakeChartClient) GetDailyCloses(symbol string, days int) ([]yahoo.HistoricalPrice, error) {
	f.requestedDays = append(f.requestedDays, days)
	if f.closesErr != nil {
		return nil, f.closesErr
	}
	return f.closes, nil
}

// fakeCache is an in-memory Cache
type fakeCache struct {
	saved  map[string]domain.PriceSeries
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{saved: make(map[string]domain.PriceSeries)}
}

func (f *fakeCache) SaveCloses(symbol string, series domain.PriceSeries) error {
	f.saved[symbol] = series
	return nil
}

func (f *fakeCache) GetCloses(symbol string, days int) (domain.PriceSeries, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.saved[symbol], nil
}

func TestService_LatestPrice_PrimaryWindow(t *testing.T) {
	client := &fakeChartClient{latestByRange: map[string]float64{"1d": 25000}}
	svc := NewService(client, newFakeCache(), zerolog.Nop())

	assert.InDelta(t, 25000.0, svc.LatestPrice(domain.AssetBTC), 1e-9)
}

func TestService_LatestPrice_FallbackWindow(t *testing.T) {
	// Empty primary window, the longer retry window has data
	client := &fakeChartClient{latestByRange: map[string]float64{"5d": 24000}}
	svc := NewService(client, newFakeCache(), zerolog.Nop())

	assert.InDelta(t, 24000.0, svc.LatestPrice(domain.AssetBTC), 1e-9)
}

func TestService_LatestPrice_UnavailableIsZero(t *testing.T) {
	client := &fakeChartClient{latestErr: fmt.Errorf("connection refused")}
	svc := NewService(client, newFakeCache(), zerolog.Nop())

	// Failures are swallowed, the sentinel 0 means "unknown"
	assert.Equal(t, 0.0, svc.LatestPrice(domain.AssetGold))
}

func TestService_PriceSeries_EnforcesMinimumLookback(t *testing.T) {
	client := &fakeChartClient{closes: dailyCloses(210)}
	svc := NewService(client, newFakeCache(), zerolog.Nop())

	svc.PriceSeries(domain.AssetBTC, 30)

	require.Len(t, client.requestedDays, 1)
	assert.Equal(t, minLookbackDays, client.requestedDays[0],
		"short lookbacks are raised so the 180-day average has samples")
}

func TestService_PriceSeries_UpdatesCache(t *testing.T) {
	client := &fakeChartClient{closes: dailyCloses(5)}
	cache := newFakeCache()
	svc := NewService(client, cache, zerolog.Nop())

	series := svc.PriceSeries(domain.AssetBTC, 200)

	require.Len(t, series, 5)
	assert.Equal(t, series, cache.saved["BTC-USD"])
}

func TestService_PriceSeries_FallsBackToCache(t *testing.T) {
	cache := newFakeCache()
	cache.saved["BTC-USD"] = domain.PriceSeries{
		{Date: time.Now().AddDate(0, 0, -1), Close: 24500},
	}

	client := &fakeChartClient{closesErr: fmt.Errorf("timeout")}
	svc := NewService(client, cache, zerolog.Nop())

	series := svc.PriceSeries(domain.AssetBTC, 200)
	require.Len(t, series, 1)
	assert.InDelta(t, 24500.0, series[0].Close, 1e-9)
}

func TestService_PriceSeries_NothingAnywhere(t *testing.T) {
	client := &fakeChartClient{closesErr: fmt.Errorf("timeout")}
	cache := newFakeCache()
	cache.getErr = fmt.Errorf("cache unreadable")
	svc := NewService(client, cache, zerolog.Nop())

	series := svc.PriceSeries(domain.AssetBTC, 200)
	assert.Empty(t, series, "empty series, never an error")
}

func TestService_PriceSeries_EmptyFetchTriesCache(t *testing.T) {
	cache := newFakeCache()
	cache.saved["GC=F"] = domain.PriceSeries{
		{Date: time.Now().AddDate(0, 0, -2), Close: 1990},
	}

	client := &fakeChartClient{closes: nil} // fetch succeeds but is empty
	svc := NewService(client, cache, zerolog.Nop())

	series := svc.PriceSeries(domain.AssetGold, 200)
	require.Len(t, series, 1)
	assert.InDelta(t, 1990.0, series[0].Close, 1e-9)
}

// dailyCloses builds n fake daily prices, oldest first
func dailyCloses(n int) []yahoo.HistoricalPrice {
	start := time.Now().AddDate(0, 0, -n)
	prices := make([]yahoo.HistoricalPrice, n)
	for i := range prices {
		prices[i] = yahoo.HistoricalPrice{
			Date:  start.AddDate(0, 0, i),
			Close: 100 + float64(i),
		}
	}
	return prices
}
