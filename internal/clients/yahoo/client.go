package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Client is a Yahoo Finance API client
type Client struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://query1.finance.yahoo.com",
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// NewClientWithBaseURL creates a client pointed at a custom endpoint (tests)
func NewClientWithBaseURL(baseURL string, log zerolog.Logger) *Client {
	c := NewClient(log)
	c.baseURL = baseURL
	return c
}

// chartResponse is the payload of the v8 chart endpoint
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// GetLatestClose fetches the most recent daily close for a symbol
// using the given chart range (e.g. "1d", "5d").
func (c *Client) GetLatestClose(symbol, dataRange string) (float64, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", dataRange)

	prices, err := c.fetchChart(symbol, params)
	if err != nil {
		return 0, err
	}

	if len(prices) == 0 {
		return 0, fmt.Errorf("no close data returned for symbol %s", symbol)
	}

	return prices[len(prices)-1].Close, nil
}

// GetDailyCloses fetches daily closing prices for the last `days` calendar days,
// oldest first. Yahoo sometimes returns null closes, those entries are skipped.
func (c *Client) GetDailyCloses(symbol string, days int) ([]HistoricalPrice, error) {
	now := time.Now()

	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("period1", strconv.FormatInt(now.AddDate(0, 0, -days).Unix(), 10))
	params.Add("period2", strconv.FormatInt(now.Unix(), 10))

	return c.fetchChart(symbol, params)
}

// fetchChart queries the v8 chart endpoint and extracts the close series
func (c *Client) fetchChart(symbol string, params url.Values) ([]HistoricalPrice, error) {
	reqURL := c.baseURL + "/v8/finance/chart/" + url.QueryEscape(symbol) + "?" + params.Encode()

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers to mimic browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.Chart.Error)
	}

	if len(result.Chart.Result) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No chart data returned")
		return []HistoricalPrice{}, nil
	}

	chartData := result.Chart.Result[0]
	if len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No quote data in response")
		return []HistoricalPrice{}, nil
	}

	closes := chartData.Indicators.Quote[0].Close

	var prices []HistoricalPrice
	for i, ts := range chartData.Timestamp {
		if i >= len(closes) {
			break
		}

		// Yahoo sometimes returns null values
		if closes[i] == 0 {
			continue
		}

		prices = append(prices, HistoricalPrice{
			Date:  time.Unix(ts, 0).UTC(),
			Close: closes[i],
		})
	}

	return prices, nil
}
