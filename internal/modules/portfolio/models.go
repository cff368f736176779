package portfolio

import (
	"fmt"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// Purchase is a single registered purchase of a tracked asset.
// Purchases form an ordered sequence, insertion order is display order and
// edit/delete address them by index.
type Purchase struct {
	Date     string       `json:"fecha"`    // YYYY-MM-DD
	Asset    domain.Asset `json:"activo"`
	Quantity float64      `json:"cantidad"`
	Amount   float64      `json:"monto"` // Invested amount in USD
}

// Validate checks the purchase fields at the boundary
func (p Purchase) Validate() error {
	if !p.Asset.Valid() {
		return fmt.Errorf("invalid asset %q", p.Asset)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than 0")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}

// AssetMetrics is the derived valuation of one asset's aggregated purchases
type AssetMetrics struct {
	Asset    domain.Asset `json:"asset"`
	Quantity float64      `json:"quantity"`
	Invested float64      `json:"invested"`
	AvgCost  float64      `json:"avg_cost"` // Invested / Quantity, 0 when quantity is 0
	Price    float64      `json:"price"`    // Current quote, 0 when unavailable
	Value    float64      `json:"value"`    // Quantity * Price
	Gain     float64      `json:"gain"`     // Value - Invested
	GainPct  float64      `json:"gain_pct"` // Gain / Invested * 100, 0 when invested is 0
}

// Totals is the portfolio-level aggregation across all assets
type Totals struct {
	Invested float64 `json:"total_invested"`
	Value    float64 `json:"total_value"`
	Gain     float64 `json:"total_gain"`
	GainPct  float64 `json:"total_gain_pct"`
}
