// Package performance rebases raw price series into YTD percentage-return
// series and assembles multi-ticker comparison sets for overlay charts.
package performance

import (
	"time"
)

// NormalizedPoint is one trading day's percentage return relative to the
// base price of its series.
type NormalizedPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return_pct"`
}

// NormalizedSeries is a price series rebased to 0% at its first trading
// day. It has the same length and date alignment as the series it was
// derived from.
type NormalizedSeries []NormalizedPoint

// Final returns the last percentage return of the series, or nil when the
// series is empty.
func (s NormalizedSeries) Final() *float64 {
	if len(s) == 0 {
		return nil
	}
	v := s[len(s)-1].Return
	return &v
}

// TickerPerformance pairs a ticker's current-period series with an
// optional prior full-year series for overlay display. Prior is nil when
// the ticker has no prior-year history, which is a valid state.
type TickerPerformance struct {
	Ticker  string           `json:"ticker"`
	Current NormalizedSeries `json:"current"`
	Prior   NormalizedSeries `json:"prior,omitempty"`
}

// ComparisonSet maps each requested ticker to its normalized series.
// Tickers whose series failed normalization are reported in Warnings
// instead of Entries; a warning for one ticker never affects the others.
type ComparisonSet struct {
	Entries  map[string]TickerPerformance `json:"entries"`
	Warnings map[string]string            `json:"warnings,omitempty"`
}

// OverlayPair aligns the Nth trading day of two series. Overlay alignment
// is by trading-day ordinal from year start, not calendar date: Feb 29 and
// holiday-calendar differences shift absolute dates between years.
type OverlayPair struct {
	Index   int     `json:"index"`
	Current float64 `json:"current"`
	Prior   float64 `json:"prior"`
}
