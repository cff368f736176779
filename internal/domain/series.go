package domain

import "time"

// PricePoint is a single daily close for an asset.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a time-ordered (oldest first) sequence of daily closes.
type PriceSeries []PricePoint

// Closes extracts the closing prices, preserving order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent close, or 0 for an empty series.
func (s PriceSeries) Latest() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}
