package comparison

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfscope/perfscope/internal/domain"
)

var testLog = zerolog.New(nil).Level(zerolog.Disabled)

// fixtureProvider serves canned series keyed by ticker and fails the
// tickers listed in failing. Safe for concurrent use.
type fixtureProvider struct {
	mu      sync.Mutex
	series  map[string]domain.PriceSeries
	failing map[string]error
	calls   int
}

func (p *fixtureProvider) DailyPrices(_ context.Context, ticker string, from, to time.Time) (domain.PriceSeries, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if err, ok := p.failing[ticker]; ok {
		return nil, err
	}
	var out domain.PriceSeries
	for _, pt := range p.series[ticker] {
		if !pt.Date.Before(from) && pt.Date.Before(to) {
			out = append(out, pt)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(p domain.DataProvider, now time.Time) *Service {
	s := NewService(p, testLog)
	s.now = func() time.Time { return now }
	return s
}

func twoYearFixture() map[string]domain.PriceSeries {
	return map[string]domain.PriceSeries{
		"AAPL": {
			// 2023: +15%
			{Date: day(2023, time.January, 3), Close: 130},
			{Date: day(2023, time.December, 29), Close: 149.5},
			// 2024 YTD: +10%
			{Date: day(2024, time.January, 2), Close: 150},
			{Date: day(2024, time.April, 1), Close: 165},
		},
		"MSFT": {
			// 2024 YTD only: +2% (listed this year, no prior history)
			{Date: day(2024, time.January, 2), Close: 400},
			{Date: day(2024, time.April, 1), Close: 408},
		},
	}
}

func TestDetermineWindow(t *testing.T) {
	t.Run("mid-year compares YTD against prior year", func(t *testing.T) {
		w := determineWindow(day(2024, time.June, 15))
		assert.Equal(t, Window{CurrentYear: 2024, PriorYear: 2023, January: false}, w)
	})

	t.Run("january compares the two completed years", func(t *testing.T) {
		w := determineWindow(day(2025, time.January, 10))
		assert.Equal(t, Window{CurrentYear: 2024, PriorYear: 2023, January: true}, w)
	})
}

func TestCompare(t *testing.T) {
	now := day(2024, time.April, 15)

	t.Run("current plus optional prior per ticker", func(t *testing.T) {
		provider := &fixtureProvider{series: twoYearFixture()}
		svc := newTestService(provider, now)

		result, err := svc.Compare(context.Background(), []string{"AAPL", "MSFT"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.ID)
		assert.Equal(t, 2024, result.Window.CurrentYear)

		require.Len(t, result.Set.Entries, 2)
		assert.NotNil(t, result.Set.Entries["AAPL"].Prior)
		assert.Nil(t, result.Set.Entries["MSFT"].Prior)
		assert.Empty(t, result.Failures)
	})

	t.Run("failed ticker omitted, others unaffected", func(t *testing.T) {
		provider := &fixtureProvider{
			series:  twoYearFixture(),
			failing: map[string]error{"ZZZZ": &domain.FetchError{Ticker: "ZZZZ", Err: errors.New("not found")}},
		}
		svc := newTestService(provider, now)

		result, err := svc.Compare(context.Background(), []string{"AAPL", "ZZZZ", "MSFT"})
		require.NoError(t, err)

		require.Len(t, result.Set.Entries, 2)
		assert.NotContains(t, result.Set.Entries, "ZZZZ")
		assert.Contains(t, result.Failures, "ZZZZ")
	})

	t.Run("table sorted by current return descending", func(t *testing.T) {
		provider := &fixtureProvider{series: twoYearFixture()}
		svc := newTestService(provider, now)

		result, err := svc.Compare(context.Background(), []string{"MSFT", "AAPL"})
		require.NoError(t, err)
		require.Len(t, result.Table, 2)

		assert.Equal(t, "AAPL", result.Table[0].Ticker) // +10% beats +2%
		require.NotNil(t, result.Table[0].CurrentReturn)
		assert.InDelta(t, 10.0, *result.Table[0].CurrentReturn, 1e-9)
		require.NotNil(t, result.Table[0].PriorReturn)
		assert.InDelta(t, 15.0, *result.Table[0].PriorReturn, 1e-9)
		require.NotNil(t, result.Table[0].Difference)
		assert.InDelta(t, -5.0, *result.Table[0].Difference, 1e-9)

		assert.Equal(t, "MSFT", result.Table[1].Ticker)
		assert.Nil(t, result.Table[1].PriorReturn)
		assert.Nil(t, result.Table[1].Difference)
	})

	t.Run("ticker input is cleaned and deduplicated", func(t *testing.T) {
		provider := &fixtureProvider{series: twoYearFixture()}
		svc := newTestService(provider, now)

		result, err := svc.Compare(context.Background(), []string{" aapl ", "AAPL", "", "msft"})
		require.NoError(t, err)
		assert.Len(t, result.Set.Entries, 2)
	})

	t.Run("no tickers rejected", func(t *testing.T) {
		svc := newTestService(&fixtureProvider{}, now)
		_, err := svc.Compare(context.Background(), []string{"", "  "})
		assert.ErrorIs(t, err, ErrNoTickers)
	})

	t.Run("too many tickers rejected", func(t *testing.T) {
		svc := newTestService(&fixtureProvider{}, now)
		many := make([]string, 0, maxTickers+1)
		for i := 0; i <= maxTickers; i++ {
			many = append(many, string(rune('A'+i))+"X")
		}
		_, err := svc.Compare(context.Background(), many)
		assert.ErrorIs(t, err, ErrTooManyTickers)
	})

	t.Run("january window fetches the two completed years", func(t *testing.T) {
		provider := &fixtureProvider{series: twoYearFixture()}
		svc := newTestService(provider, day(2025, time.January, 8))

		result, err := svc.Compare(context.Background(), []string{"AAPL"})
		require.NoError(t, err)

		assert.True(t, result.Window.January)
		assert.Equal(t, 2024, result.Window.CurrentYear)
		assert.Equal(t, 2023, result.Window.PriorYear)

		entry := result.Set.Entries["AAPL"]
		// "Current" is the full just-completed 2024, prior is full 2023
		require.NotEmpty(t, entry.Current)
		assert.Equal(t, 2024, entry.Current[0].Date.Year())
		require.NotEmpty(t, entry.Prior)
		assert.Equal(t, 2023, entry.Prior[0].Date.Year())
	})
}
