// Package comparison implements the multi-ticker comparison page: each
// ticker's current-YTD curve overlaid with its prior full-year curve, plus
// a summary table of period returns.
package comparison

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/perfscope/perfscope/internal/domain"
	"github.com/perfscope/perfscope/internal/modules/performance"
)

const (
	// maxTickers bounds one comparison request.
	maxTickers = 10

	// fetchConcurrency caps parallel provider requests per comparison.
	fetchConcurrency = 4
)

var (
	// ErrNoTickers is returned when the request contains no usable tickers.
	ErrNoTickers = errors.New("no tickers supplied")

	// ErrTooManyTickers is returned when the request exceeds maxTickers.
	ErrTooManyTickers = fmt.Errorf("too many tickers (maximum %d)", maxTickers)
)

// Window describes which two periods a comparison covers. In January the
// current year has almost no trading history, so the just-completed prior
// year becomes the "current" period and the year before it the prior one.
type Window struct {
	CurrentYear int  `json:"current_year"`
	PriorYear   int  `json:"prior_year"`
	January     bool `json:"january"`
}

// TableRow is one ticker's summary line. Pointer fields are nil when the
// corresponding period has no data.
type TableRow struct {
	Ticker        string   `json:"ticker"`
	CurrentReturn *float64 `json:"current_return,omitempty"`
	PriorReturn   *float64 `json:"prior_return,omitempty"`
	Difference    *float64 `json:"difference,omitempty"`
}

// Result is the full multi-ticker comparison payload.
type Result struct {
	ID       string                    `json:"id"`
	Window   Window                    `json:"window"`
	Set      performance.ComparisonSet `json:"comparison"`
	Failures map[string]string         `json:"failures,omitempty"`
	Table    []TableRow                `json:"table"`
}

// Service runs multi-ticker comparisons against a data provider.
type Service struct {
	provider domain.DataProvider
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a new comparison service.
func NewService(provider domain.DataProvider, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		log:      log.With().Str("service", "comparison").Logger(),
		now:      time.Now,
	}
}

// determineWindow applies the January rule.
func determineWindow(now time.Time) Window {
	year := now.Year()
	if now.Month() == time.January {
		return Window{CurrentYear: year - 1, PriorYear: year - 2, January: true}
	}
	return Window{CurrentYear: year, PriorYear: year - 1, January: false}
}

// Compare fetches current-period and prior-year series for every ticker in
// parallel, normalizes them into a ComparisonSet, and builds the summary
// table. A fetch failure for one ticker is recorded in Failures and never
// aborts the others; partial results are always returned.
func (s *Service) Compare(ctx context.Context, tickers []string) (*Result, error) {
	tickers = cleanTickers(tickers)
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	if len(tickers) > maxTickers {
		return nil, ErrTooManyTickers
	}

	now := s.now()
	window := determineWindow(now)

	currentFrom := time.Date(window.CurrentYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	currentTo := now
	if window.January {
		currentTo = time.Date(window.CurrentYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	priorFrom := time.Date(window.PriorYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	priorTo := time.Date(window.PriorYear+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	type fetched struct {
		current    domain.PriceSeries
		prior      domain.PriceSeries
		currentErr error
		priorErr   error
	}
	results := make([]fetched, len(tickers))

	// Each ticker's fetches are independent; failures are recorded per
	// slot, so the group itself never returns an error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			results[i].current, results[i].currentErr =
				s.provider.DailyPrices(gctx, ticker, currentFrom, currentTo)
			results[i].prior, results[i].priorErr =
				s.provider.DailyPrices(gctx, ticker, priorFrom, priorTo)
			return nil
		})
	}
	_ = g.Wait()

	current := make(map[string]domain.PriceSeries)
	prior := make(map[string]domain.PriceSeries)
	failures := make(map[string]string)

	for i, ticker := range tickers {
		res := results[i]
		if res.currentErr != nil {
			s.log.Warn().Err(res.currentErr).Str("ticker", ticker).Msg("Current-period fetch failed")
			failures[ticker] = res.currentErr.Error()
			continue
		}
		current[ticker] = res.current
		if res.priorErr != nil {
			s.log.Warn().Err(res.priorErr).Str("ticker", ticker).Msg("Prior-year fetch failed")
			failures[ticker] = "prior year: " + res.priorErr.Error()
			continue
		}
		prior[ticker] = res.prior
	}

	set := performance.BuildComparisonSet(tickers, current, prior)

	return &Result{
		ID:       uuid.New().String(),
		Window:   window,
		Set:      set,
		Failures: failures,
		Table:    buildTable(set),
	}, nil
}

// buildTable produces one row per comparison entry, sorted by current
// return descending.
func buildTable(set performance.ComparisonSet) []TableRow {
	rows := make([]TableRow, 0, len(set.Entries))
	for _, entry := range set.Entries {
		row := TableRow{
			Ticker:        entry.Ticker,
			CurrentReturn: entry.Current.Final(),
			PriorReturn:   entry.Prior.Final(),
		}
		if row.CurrentReturn != nil && row.PriorReturn != nil {
			diff := *row.CurrentReturn - *row.PriorReturn
			row.Difference = &diff
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].CurrentReturn, rows[j].CurrentReturn
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if *a != *b {
			return *a > *b
		}
		return rows[i].Ticker < rows[j].Ticker
	})
	return rows
}

// cleanTickers uppercases, trims, and deduplicates while preserving order.
func cleanTickers(tickers []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
