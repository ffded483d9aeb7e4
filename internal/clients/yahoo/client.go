// Package yahoo implements the Yahoo Finance daily price provider.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/perfscope/perfscope/internal/domain"
)

// DefaultBaseURL is the public Yahoo Finance chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is a Yahoo Finance chart API client. It implements
// domain.DataProvider.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger

	// symbolMap maps common index shorthands to Yahoo tickers.
	symbolMap map[string]string
}

// NewClient creates a new Yahoo Finance client. baseURL is overridable for
// tests; pass "" for the public endpoint.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "yahoo").Logger(),
		symbolMap: map[string]string{
			"SPX":   "^GSPC",
			"SP500": "^GSPC",
			"NDX":   "^NDX",
			"DJI":   "^DJI",
			"VIX":   "^VIX",
		},
	}
}

// yahooSymbol resolves index shorthands; everything else passes through.
func (c *Client) yahooSymbol(ticker string) string {
	if mapped, ok := c.symbolMap[ticker]; ok {
		return mapped
	}
	return ticker
}

// chartResponse is the v8 chart API envelope. Price cells are pointers
// because Yahoo returns JSON null for days it has no value for.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyPrices fetches daily closing prices for a ticker between from and to
// (inclusive). Adjusted closes are used when Yahoo provides them, matching
// the behavior of auto-adjusted price downloads.
//
// A valid ticker with no trading activity in range yields an empty series
// and a nil error; provider failures and unknown tickers yield a
// *domain.FetchError.
func (c *Client) DailyPrices(ctx context.Context, ticker string, from, to time.Time) (domain.PriceSeries, error) {
	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("period1", strconv.FormatInt(from.Unix(), 10))
	params.Set("period2", strconv.FormatInt(to.Unix(), 10))

	reqURL := c.baseURL + "/v8/finance/chart/" + url.PathEscape(c.yahooSymbol(ticker)) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.FetchError{Ticker: ticker, Err: err}
	}

	// Yahoo rejects requests without a browser-looking User-Agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Ticker: ticker, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Ticker: ticker, Err: fmt.Errorf("read body: %w", err)}
	}

	var parsed chartResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &domain.FetchError{Ticker: ticker, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return nil, &domain.FetchError{Ticker: ticker, Err: fmt.Errorf("decode response: %w", jsonErr)}
	}

	// Yahoo reports unknown tickers as a structured error with a 404.
	if parsed.Chart.Error != nil {
		return nil, &domain.FetchError{
			Ticker: ticker,
			Err:    fmt.Errorf("%s: %s", parsed.Chart.Error.Code, parsed.Chart.Error.Description),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.FetchError{Ticker: ticker, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Timestamp) == 0 {
		c.log.Debug().Str("ticker", ticker).Msg("No trading activity in range")
		return domain.PriceSeries{}, nil
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return domain.PriceSeries{}, nil
	}
	closes := result.Indicators.Quote[0].Close

	var adjCloses []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	series := make(domain.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null cell, market data gap
		}
		px := *closes[i]
		if i < len(adjCloses) && adjCloses[i] != nil && *adjCloses[i] > 0 {
			px = *adjCloses[i]
		}

		// Timestamps are exchange-local session opens; keep the date only.
		d := time.Unix(ts, 0).UTC()
		series = append(series, domain.PricePoint{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Close: px,
		})
	}

	if err := series.Validate(); err != nil {
		return nil, &domain.FetchError{Ticker: ticker, Err: err}
	}

	c.log.Info().
		Str("ticker", ticker).
		Time("from", from).
		Time("to", to).
		Int("count", len(series)).
		Msg("Fetched daily prices")

	return series, nil
}
