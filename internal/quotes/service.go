// Package quotes isolates all market data access behind a service that
// never propagates quote source failures to its callers.
package quotes

import (
	"github.com/rs/zerolog"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/clients/yahoo"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// minLookbackDays guarantees enough samples for the 180-day moving average.
const minLookbackDays = 200

// ChartClient is the slice of the Yahoo client the service depends on
type ChartClient interface {
	GetLatestClose(symbol, dataRange string) (float64, error)
	GetDailyCloses(symbol string, days int) ([]yahoo.HistoricalPrice, error)
}

// Cache is the persistence boundary for fetched closes
type Cache interface {
	SaveCloses(symbol string, series domain.PriceSeries) error
	GetCloses(symbol string, days int) (domain.PriceSeries, error)
}

// Service provides current and historical prices for tracked assets
type Service struct {
	client ChartClient
	cache  Cache
	log    zerolog.Logger
}

// NewService creates a new quote service
func NewService(client ChartClient, cache Cache, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		log:    log.With().Str("service", "quotes").Logger(),
	}
}

// LatestPrice returns the current price for an asset, or 0 when the quote
// source has no data. Retrieval failures are swallowed here: the rest of
// the system treats 0 as "unknown", it never sees a quote error.
func (s *Service) LatestPrice(asset domain.Asset) float64 {
	symbol := asset.YahooSymbol()

	price, err := s.client.GetLatestClose(symbol, "1d")
	if err == nil && price > 0 {
		return price
	}

	// The 1-day window is empty outside trading hours for some symbols,
	// retry once with a longer window before giving up.
	price, err = s.client.GetLatestClose(symbol, "5d")
	if err == nil && price > 0 {
		return price
	}

	s.log.Warn().
		Err(err).
		Str("asset", string(asset)).
		Str("symbol", symbol).
		Msg("Quote unavailable, using 0")

	return 0
}

// PriceSeries returns daily closes for the asset, oldest first. At least
// minLookbackDays calendar days are requested regardless of the argument so
// the 180-day SMA has enough samples. A short or empty result is returned
// as-is: insufficient history is a degraded-data condition, not an error.
func (s *Service) PriceSeries(asset domain.Asset, lookbackDays int) domain.PriceSeries {
	if lookbackDays < minLookbackDays {
		lookbackDays = minLookbackDays
	}

	symbol := asset.YahooSymbol()

	prices, err := s.client.GetDailyCloses(symbol, lookbackDays)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("asset", string(asset)).
			Msg("Historical fetch failed, falling back to cache")
		return s.cachedSeries(symbol, lookbackDays)
	}

	series := make(domain.PriceSeries, 0, len(prices))
	for _, p := range prices {
		series = append(series, domain.PricePoint{Date: p.Date, Close: p.Close})
	}

	if len(series) == 0 {
		return s.cachedSeries(symbol, lookbackDays)
	}

	if err := s.cache.SaveCloses(symbol, series); err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to update price cache")
	}

	return series
}

// cachedSeries serves the last known closes, or an empty series when the
// cache has nothing either.
func (s *Service) cachedSeries(symbol string, days int) domain.PriceSeries {
	series, err := s.cache.GetCloses(symbol, days)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Price cache read failed")
		return domain.PriceSeries{}
	}

	if len(series) > 0 {
		s.log.Info().
			Str("symbol", symbol).
			Int("points", len(series)).
			Msg("Serving closes from cache")
	}

	return series
}
