package formulas

import (
	"github.com/markcheno/go-talib"
)

// RSI calculates the Relative Strength Index
//
// RSI Formula:
//   RSI = 100 - (100 / (1 + RS))
//   where RS = Average Gain / Average Loss over N periods
//
// When the average loss over the window is zero the indicator saturates
// at 100 (no downside momentum), it never divides by zero.
//
// Args:
//   closes: Array of closing prices, oldest first
//   window: RSI period (typically 14)
//
// Returns:
//   Current RSI value (0-100) or nil if insufficient data
func RSI(closes []float64, window int) *float64 {
	if window <= 0 || len(closes) < window+1 {
		return nil
	}

	rsi := talib.Rsi(closes, window)

	if len(rsi) > 0 && !isNaN(rsi[len(rsi)-1]) {
		result := rsi[len(rsi)-1]
		return &result
	}

	return nil
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
