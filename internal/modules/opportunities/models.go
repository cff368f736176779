package opportunities

import (
	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// Evaluation windows and thresholds. The oversold threshold is configurable,
// the windows are fixed properties of the strategy.
const (
	smaShortWindow = 30
	smaLongWindow  = 180
	rsiWindow      = 14
	lookbackDays   = 200

	// DefaultOversoldThreshold marks the RSI level below which an asset
	// is considered oversold.
	DefaultOversoldThreshold = 30
)

// IndicatorSnapshot holds the computed indicators for one asset.
// Nil values mean the indicator is undefined (insufficient history).
type IndicatorSnapshot struct {
	Asset  domain.Asset `json:"asset"`
	SMA30  *float64     `json:"sma_30,omitempty"`
	SMA180 *float64     `json:"sma_180,omitempty"`
	RSI    *float64     `json:"rsi,omitempty"`
	Price  float64      `json:"price"`
}

// Result is the buy-opportunity classification for one asset.
// Apt is the logical AND of the three conditions.
type Result struct {
	Asset       domain.Asset `json:"asset"`
	BelowSMA30  bool         `json:"below_sma_30"`
	BelowSMA180 bool         `json:"below_sma_180"`
	Oversold    bool         `json:"oversold"`
	Apt         bool         `json:"apt"`
}
