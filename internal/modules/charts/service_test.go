package charts

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfscope/perfscope/internal/modules/comparison"
	"github.com/perfscope/perfscope/internal/modules/historical"
	"github.com/perfscope/perfscope/internal/modules/performance"
)

var testLog = zerolog.New(nil).Level(zerolog.Disabled)

func normSeries(year int, returns ...float64) performance.NormalizedSeries {
	s := make(performance.NormalizedSeries, len(returns))
	start := time.Date(year, time.January, 2, 0, 0, 0, 0, time.UTC)
	for i, r := range returns {
		s[i] = performance.NormalizedPoint{Date: start.AddDate(0, 0, i), Return: r}
	}
	return s
}

func TestHistoricalChart(t *testing.T) {
	svc := NewService(testLog)

	analysis := &historical.Analysis{
		Ticker: "SPY",
		Years: []historical.YearSeries{
			{Year: 2022, Series: normSeries(2022, 0, -2, -5)},
			{Year: 2023, Series: normSeries(2023, 0, 3, 8)},
			{Year: 2024, Series: normSeries(2024, 0, 1)},
		},
		Summary: historical.Summary{StartYear: 2022, HighlightYear: 2024},
	}

	chart := svc.HistoricalChart(analysis)

	require.Len(t, chart.Series, 3)
	assert.Contains(t, chart.Title, "SPY")
	assert.Contains(t, chart.Title, "2022–2024")

	// Historical years are grey, highlight year is gold and wider
	assert.Equal(t, colorHistorical, chart.Series[0].Color)
	assert.False(t, chart.Series[0].Highlight)
	assert.Equal(t, colorHighlight, chart.Series[2].Color)
	assert.True(t, chart.Series[2].Highlight)
	assert.Greater(t, chart.Series[2].Width, chart.Series[0].Width)

	// Points carry trading-day ordinals
	assert.Equal(t, 0, chart.Series[0].Points[0].Index)
	assert.Equal(t, 2, chart.Series[0].Points[2].Index)
}

func TestComparisonChart(t *testing.T) {
	svc := NewService(testLog)

	result := &comparison.Result{
		Window: comparison.Window{CurrentYear: 2024, PriorYear: 2023},
		Set: performance.ComparisonSet{
			Entries: map[string]performance.TickerPerformance{
				"AAPL": {
					Ticker:  "AAPL",
					Current: normSeries(2024, 0, 2, 4),
					Prior:   normSeries(2023, 0, 1, 3, 6),
				},
				"MSFT": {
					Ticker:  "MSFT",
					Current: normSeries(2024, 0, 1),
				},
			},
		},
	}

	chart := svc.ComparisonChart(result)

	// AAPL gets two lines (prior dashed + current solid), MSFT one
	require.Len(t, chart.Series, 3)
	assert.Equal(t, "AAPL 2023", chart.Series[0].Name)
	assert.True(t, chart.Series[0].Dashed)
	assert.Equal(t, "AAPL 2024", chart.Series[1].Name)
	assert.False(t, chart.Series[1].Dashed)
	assert.Equal(t, "MSFT 2024", chart.Series[2].Name)

	// Same ticker shares one color; different tickers differ
	assert.Equal(t, chart.Series[0].Color, chart.Series[1].Color)
	assert.NotEqual(t, chart.Series[1].Color, chart.Series[2].Color)

	// Overlay pairs exist only for tickers with a prior year, truncated to
	// the shorter series
	require.Contains(t, chart.Overlays, "AAPL")
	assert.Len(t, chart.Overlays["AAPL"], 3) // min(3, 4)
	assert.NotContains(t, chart.Overlays, "MSFT")

	assert.Equal(t, "2024 YTD vs Full Year 2023", chart.Subtitle)
}

func TestComparisonChartJanuarySubtitle(t *testing.T) {
	svc := NewService(testLog)
	chart := svc.ComparisonChart(&comparison.Result{
		Window: comparison.Window{CurrentYear: 2024, PriorYear: 2023, January: true},
		Set:    performance.ComparisonSet{Entries: map[string]performance.TickerPerformance{}},
	})
	assert.Equal(t, "Full Year 2024 vs Full Year 2023", chart.Subtitle)
}
