// Package charts turns analysis results into renderable chart payloads.
// The actual drawing happens in the browser; this package only decides
// series, styling, and axis labels.
package charts

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/perfscope/perfscope/internal/modules/comparison"
	"github.com/perfscope/perfscope/internal/modules/historical"
	"github.com/perfscope/perfscope/internal/modules/performance"
)

// Line colors matching the original UI.
const (
	colorHighlight  = "#FFD700" // gold
	colorHistorical = "#808080" // grey
)

// palette assigns a distinct color per ticker in comparison charts.
var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

// Point is a single chart point. Index is the trading-day ordinal from
// year start; series from different years overlay by this index, never by
// calendar date.
type Point struct {
	Index int     `json:"index"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is one renderable line.
type Series struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Dashed    bool    `json:"dashed"`
	Width     float64 `json:"width"`
	Highlight bool    `json:"highlight"`
	Points    []Point `json:"points"`
}

// Chart is a complete renderable chart payload.
type Chart struct {
	Title      string                               `json:"title"`
	Subtitle   string                               `json:"subtitle,omitempty"`
	XAxisLabel string                               `json:"x_axis_label"`
	YAxisLabel string                               `json:"y_axis_label"`
	Series     []Series                             `json:"series"`
	Overlays   map[string][]performance.OverlayPair `json:"overlays,omitempty"`
}

// Service builds chart payloads.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new charts service.
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "charts").Logger()}
}

// toPoints converts a normalized series to chart points indexed by
// trading-day ordinal.
func toPoints(s performance.NormalizedSeries) []Point {
	points := make([]Point, len(s))
	for i, p := range s {
		points[i] = Point{
			Index: i,
			Date:  p.Date.Format("2006-01-02"),
			Value: p.Return,
		}
	}
	return points
}

// HistoricalChart renders every analyzed year as a line, historical years
// in muted grey and the highlight year in gold.
func (s *Service) HistoricalChart(a *historical.Analysis) *Chart {
	chart := &Chart{
		Title: fmt.Sprintf("%s Year-to-Date Price Return by Calendar Year (%d–%d)",
			a.Ticker, a.Summary.StartYear, a.Summary.HighlightYear),
		XAxisLabel: "Trading day of year",
		YAxisLabel: "Year-to-Date Price Return (%)",
	}

	for _, ys := range a.Years {
		line := Series{
			Name:   fmt.Sprintf("%d", ys.Year),
			Color:  colorHistorical,
			Width:  1.0,
			Points: toPoints(ys.Series),
		}
		if ys.Year == a.Summary.HighlightYear {
			line.Color = colorHighlight
			line.Width = 3.0
			line.Highlight = true
		}
		chart.Series = append(chart.Series, line)
	}

	return chart
}

// ComparisonChart renders each ticker's current period as a solid line and
// its prior year as a dashed line in the same color. Overlays carry the
// ordinal-aligned pairs for tooltip display.
func (s *Service) ComparisonChart(r *comparison.Result) *Chart {
	chart := &Chart{
		Title:      "Year-to-Date Price Return Comparison",
		Subtitle:   windowSubtitle(r.Window),
		XAxisLabel: "Trading day of year",
		YAxisLabel: "Year-to-Date Price Return (%)",
		Overlays:   make(map[string][]performance.OverlayPair),
	}

	// Stable ticker order keeps colors consistent across reloads.
	tickers := make([]string, 0, len(r.Set.Entries))
	for t := range r.Set.Entries {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for i, ticker := range tickers {
		entry := r.Set.Entries[ticker]
		color := palette[i%len(palette)]

		if entry.Prior != nil {
			chart.Series = append(chart.Series, Series{
				Name:   fmt.Sprintf("%s %d", ticker, r.Window.PriorYear),
				Color:  color,
				Dashed: true,
				Width:  2.0,
				Points: toPoints(entry.Prior),
			})
			chart.Overlays[ticker] = performance.AlignByOrdinal(entry.Current, entry.Prior)
		}

		chart.Series = append(chart.Series, Series{
			Name:      fmt.Sprintf("%s %d", ticker, r.Window.CurrentYear),
			Color:     color,
			Width:     2.5,
			Highlight: true,
			Points:    toPoints(entry.Current),
		})
	}

	return chart
}

func windowSubtitle(w comparison.Window) string {
	if w.January {
		return fmt.Sprintf("Full Year %d vs Full Year %d", w.CurrentYear, w.PriorYear)
	}
	return fmt.Sprintf("%d YTD vs Full Year %d", w.CurrentYear, w.PriorYear)
}
