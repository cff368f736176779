package quotes

import (
	"fmt"
	"time"

	"github.com/ariel-pastor/proyecto-jubilacion/internal/database"
	"github.com/ariel-pastor/proyecto-jubilacion/internal/domain"
)

// CacheRepository persists fetched daily closes so indicator evaluation can
// fall back to the last known series when the quote source is unreachable.
type CacheRepository struct {
	db *database.DB
}

// NewCacheRepository creates a new price cache repository
func NewCacheRepository(db *database.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// SaveCloses upserts the given closes for a symbol
func (r *CacheRepository) SaveCloses(symbol string, series domain.PriceSeries) error {
	if len(series) == 0 {
		return nil
	}

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_closes (symbol, date, close)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET close = excluded.close`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range series {
		if _, err := stmt.Exec(symbol, p.Date.Format("2006-01-02"), p.Close); err != nil {
			return fmt.Errorf("failed to upsert close: %w", err)
		}
	}

	return tx.Commit()
}

// GetCloses returns the cached closes for a symbol over the last `days`
// calendar days, oldest first.
func (r *CacheRepository) GetCloses(symbol string, days int) (domain.PriceSeries, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	rows, err := r.db.Query(`
		SELECT date, close FROM daily_closes
		WHERE symbol = ? AND date >= ?
		ORDER BY date ASC`, symbol, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached closes: %w", err)
	}
	defer rows.Close()

	var series domain.PriceSeries
	for rows.Next() {
		var dateStr string
		var close float64
		if err := rows.Scan(&dateStr, &close); err != nil {
			return nil, fmt.Errorf("failed to scan cached close: %w", err)
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		series = append(series, domain.PricePoint{Date: date, Close: close})
	}

	return series, rows.Err()
}
