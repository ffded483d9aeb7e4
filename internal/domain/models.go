// Package domain provides core domain models and types.
package domain

import (
	"context"
	"fmt"
	"time"
)

// PricePoint is a single trading day's closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is the ordered daily price history for a single ticker.
// Dates are strictly increasing; weekends and market holidays are simply
// absent (the trading calendar is provider-determined).
type PriceSeries []PricePoint

// Validate checks that dates are strictly increasing with no duplicates.
// Out-of-order or duplicate dates indicate a data-quality problem at the
// provider and are reported, never repaired.
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(s[i-1].Date) {
			return fmt.Errorf("price series not strictly increasing at index %d: %s does not follow %s",
				i, s[i].Date.Format("2006-01-02"), s[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// First returns the first point of the series. Callers must check length first.
func (s PriceSeries) First() PricePoint { return s[0] }

// Last returns the last point of the series. Callers must check length first.
func (s PriceSeries) Last() PricePoint { return s[len(s)-1] }

// SplitByYear groups the series into per-calendar-year sub-series, keyed by
// year. Ordering within each sub-series is preserved.
func (s PriceSeries) SplitByYear() map[int]PriceSeries {
	byYear := make(map[int]PriceSeries)
	for _, p := range s {
		y := p.Date.Year()
		byYear[y] = append(byYear[y], p)
	}
	return byYear
}

// DataProvider fetches daily closing prices for a ticker.
//
// Implementations return an empty series (not an error) when the ticker is
// valid but had no trading activity in the requested range, and a
// *FetchError for network/provider failures or unknown tickers.
type DataProvider interface {
	DailyPrices(ctx context.Context, ticker string, from, to time.Time) (PriceSeries, error)
}

// FetchError wraps a provider failure for a single ticker so that callers
// can report per-ticker failures without aborting the rest of a batch.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
