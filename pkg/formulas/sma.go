package formulas

import (
	"github.com/markcheno/go-talib"
)

// SMA calculates the Simple Moving Average over the last `window` closes.
//
// Args:
//   closes: Array of closing prices, oldest first
//   window: Number of periods to average (e.g. 30, 180)
//
// Returns:
//   Current SMA value, or nil if there are fewer closes than the window
//   (the average is undefined, callers must treat comparisons as false)
func SMA(closes []float64, window int) *float64 {
	if window <= 0 || len(closes) < window {
		return nil
	}

	sma := talib.Sma(closes, window)

	if len(sma) > 0 && !isNaN(sma[len(sma)-1]) {
		result := sma[len(sma)-1]
		return &result
	}

	return nil
}
