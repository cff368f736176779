package yahoo

import "time"

// HistoricalPrice represents a single daily data point
type HistoricalPrice struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}
