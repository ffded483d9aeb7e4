// Package historical implements the historical YTD analysis page: a single
// ticker's year-to-date return curves for every calendar year from a start
// year to the present, plus summary statistics across the completed years.
package historical

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/perfscope/perfscope/internal/domain"
	"github.com/perfscope/perfscope/internal/modules/performance"
)

// earliestStartYear bounds user input; Yahoo coverage gets spotty before
// the early 2000s but some indices go further back.
const earliestStartYear = 1980

// ErrInvalidStartYear is returned for a start year outside
// [earliestStartYear, current year].
var ErrInvalidStartYear = errors.New("start year out of range")

// YearSeries is one calendar year's YTD return curve.
type YearSeries struct {
	Year   int                          `json:"year"`
	Series performance.NormalizedSeries `json:"series"`
}

// Summary aggregates full-year outcomes across the analyzed years.
// Pointer fields are nil when not enough completed years exist.
type Summary struct {
	StartYear     int      `json:"start_year"`
	HighlightYear int      `json:"highlight_year"`
	YearsIncluded int      `json:"years_included"`
	AvgFullYear   *float64 `json:"avg_full_year,omitempty"`
	StdFullYear   *float64 `json:"std_full_year,omitempty"`
	BestYear      *int     `json:"best_year,omitempty"`
	BestReturn    *float64 `json:"best_return,omitempty"`
	WorstYear     *int     `json:"worst_year,omitempty"`
	WorstReturn   *float64 `json:"worst_return,omitempty"`
	CurrentYTD    *float64 `json:"current_ytd,omitempty"`
}

// Analysis is the full historical YTD result for one ticker.
type Analysis struct {
	ID       string         `json:"id"`
	Ticker   string         `json:"ticker"`
	Years    []YearSeries   `json:"years"`
	Summary  Summary        `json:"summary"`
	Warnings map[int]string `json:"warnings,omitempty"`
}

// Service runs historical YTD analyses against a data provider.
type Service struct {
	provider domain.DataProvider
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a new historical analysis service.
func NewService(provider domain.DataProvider, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		log:      log.With().Str("service", "historical").Logger(),
		now:      time.Now,
	}
}

// DefaultStartYear returns the start year used when a request omits one.
func (s *Service) DefaultStartYear() int {
	return s.now().Year() - defaultLookbackYears
}

// Analyze fetches the ticker's daily prices from the start year through
// today in a single request, splits them into calendar years, and rebases
// each year to its own first trading day. Years whose series fail
// normalization are reported as warnings; a bad year never aborts the rest.
func (s *Service) Analyze(ctx context.Context, ticker string, startYear int) (*Analysis, error) {
	now := s.now()
	currentYear := now.Year()

	if startYear < earliestStartYear || startYear > currentYear {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)",
			ErrInvalidStartYear, startYear, earliestStartYear, currentYear)
	}

	from := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	series, err := s.provider.DailyPrices(ctx, ticker, from, now)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, performance.ErrEmptySeries
	}

	byYear := series.SplitByYear()

	analysis := &Analysis{
		ID:       uuid.New().String(),
		Ticker:   ticker,
		Warnings: make(map[int]string),
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, year := range years {
		normalized, err := performance.Normalize(byYear[year])
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).Int("year", year).
				Msg("Year excluded from analysis")
			analysis.Warnings[year] = err.Error()
			continue
		}
		analysis.Years = append(analysis.Years, YearSeries{Year: year, Series: normalized})
	}

	if len(analysis.Years) == 0 {
		return nil, performance.ErrEmptySeries
	}

	analysis.Summary = s.summarize(analysis.Years, startYear, currentYear)
	return analysis, nil
}

// summarize computes full-year statistics. The highlight year is the
// current calendar year when it has data, otherwise the latest year with
// data. An incomplete highlight year is excluded from the historical
// average, matching how an in-progress YTD differs from a full-year return.
func (s *Service) summarize(years []YearSeries, startYear, currentYear int) Summary {
	highlight := years[len(years)-1].Year
	for _, ys := range years {
		if ys.Year == currentYear {
			highlight = currentYear
		}
	}

	summary := Summary{
		StartYear:     startYear,
		HighlightYear: highlight,
	}

	var fullYearReturns []float64
	var bestYear, worstYear int
	var bestReturn, worstReturn float64

	for _, ys := range years {
		final := ys.Series.Final()
		if final == nil {
			continue
		}
		if ys.Year == highlight {
			summary.CurrentYTD = final
		}
		if ys.Year == currentYear {
			continue // in-progress year is not a full-year outcome
		}

		if len(fullYearReturns) == 0 || *final > bestReturn {
			bestYear, bestReturn = ys.Year, *final
		}
		if len(fullYearReturns) == 0 || *final < worstReturn {
			worstYear, worstReturn = ys.Year, *final
		}
		fullYearReturns = append(fullYearReturns, *final)
	}

	summary.YearsIncluded = len(fullYearReturns)
	if len(fullYearReturns) > 0 {
		avg := stat.Mean(fullYearReturns, nil)
		summary.AvgFullYear = &avg
		summary.BestYear, summary.BestReturn = &bestYear, &bestReturn
		summary.WorstYear, summary.WorstReturn = &worstYear, &worstReturn
	}
	if len(fullYearReturns) > 1 {
		std := stat.StdDev(fullYearReturns, nil)
		summary.StdFullYear = &std
	}

	return summary
}
