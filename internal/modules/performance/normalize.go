package performance

import (
	"errors"
	"fmt"

	"github.com/perfscope/perfscope/internal/domain"
)

var (
	// ErrEmptySeries is returned when a ticker has no trading history in
	// the requested range.
	ErrEmptySeries = errors.New("price series is empty")

	// ErrInvalidBasePrice is returned when the first closing price of a
	// series is zero or negative. Rebasing against such a price would
	// produce infinite or sign-flipped returns, so the series is rejected.
	ErrInvalidBasePrice = errors.New("base price is not positive")
)

// Normalize rebases a price series to percentage returns relative to its
// first entry: (close/base - 1) * 100, where base is the closing price of
// the first available trading day in the series (which may not be the
// calendar year's first day). The input is not mutated.
//
// The first entry of the result is always exactly 0.
func Normalize(s domain.PriceSeries) (NormalizedSeries, error) {
	if len(s) == 0 {
		return nil, ErrEmptySeries
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	base := s.First().Close
	if base <= 0 {
		return nil, fmt.Errorf("%w: %.4f on %s", ErrInvalidBasePrice,
			base, s.First().Date.Format("2006-01-02"))
	}

	out := make(NormalizedSeries, len(s))
	for i, p := range s {
		out[i] = NormalizedPoint{
			Date:   p.Date,
			Return: (p.Close/base - 1) * 100,
		}
	}
	// First entry is always exactly 0.
	out[0].Return = 0
	return out, nil
}

// AlignByOrdinal pairs the Nth trading day of the current series with the
// Nth trading day of the prior series, for 0 <= N < min(len(current),
// len(prior)). The calendar dates at each index are ignored.
func AlignByOrdinal(current, prior NormalizedSeries) []OverlayPair {
	n := len(current)
	if len(prior) < n {
		n = len(prior)
	}
	pairs := make([]OverlayPair, n)
	for i := 0; i < n; i++ {
		pairs[i] = OverlayPair{
			Index:   i,
			Current: current[i].Return,
			Prior:   prior[i].Return,
		}
	}
	return pairs
}
