package performance

import (
	"errors"

	"github.com/perfscope/perfscope/internal/domain"
)

// BuildComparisonSet normalizes the supplied per-ticker series into a
// ComparisonSet. It does not fetch: tickers whose fetch failed upstream
// are simply absent from the input maps and therefore from the result.
//
// Each ticker present in current gets an entry with a normalized
// current-period series; tickers also present in prior get a paired
// prior-year series. A ticker present in current but absent from prior is
// a valid, non-error state ("no historical data for this ticker").
//
// A series rejected by Normalize excludes only that series: an invalid
// current series drops the ticker from Entries with a warning, an invalid
// prior series keeps the entry without the prior pairing. One bad ticker
// never aborts the rest.
func BuildComparisonSet(tickers []string, current, prior map[string]domain.PriceSeries) ComparisonSet {
	set := ComparisonSet{
		Entries:  make(map[string]TickerPerformance),
		Warnings: make(map[string]string),
	}

	for _, ticker := range tickers {
		raw, ok := current[ticker]
		if !ok {
			continue
		}

		cur, err := Normalize(raw)
		if err != nil {
			if errors.Is(err, ErrEmptySeries) {
				set.Warnings[ticker] = "no data available"
			} else {
				set.Warnings[ticker] = err.Error()
			}
			continue
		}

		entry := TickerPerformance{Ticker: ticker, Current: cur}

		if rawPrior, ok := prior[ticker]; ok {
			priorSeries, err := Normalize(rawPrior)
			switch {
			case err == nil:
				entry.Prior = priorSeries
			case errors.Is(err, ErrEmptySeries):
				// No prior-year history; leave the pairing empty.
			default:
				set.Warnings[ticker] = "prior year excluded: " + err.Error()
			}
		}

		set.Entries[ticker] = entry
	}

	return set
}
