package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfscope/perfscope/internal/domain"
)

func TestBuildComparisonSet(t *testing.T) {
	curAAPL := series(day(2024, time.January, 2), 180, 185, 190)
	priorAAPL := series(day(2023, time.January, 3), 130, 135, 140, 145)
	curMSFT := series(day(2024, time.January, 2), 370, 380)

	t.Run("prior year optional per ticker", func(t *testing.T) {
		set := BuildComparisonSet(
			[]string{"AAPL", "MSFT"},
			map[string]domain.PriceSeries{"AAPL": curAAPL, "MSFT": curMSFT},
			map[string]domain.PriceSeries{"AAPL": priorAAPL},
		)

		require.Len(t, set.Entries, 2)
		assert.NotNil(t, set.Entries["AAPL"].Prior)
		assert.Nil(t, set.Entries["MSFT"].Prior)
		assert.Empty(t, set.Warnings)
	})

	t.Run("failed ticker absent from input is simply omitted", func(t *testing.T) {
		// ZZZZ's fetch failed upstream, so it never reaches the maps.
		set := BuildComparisonSet(
			[]string{"AAPL", "ZZZZ"},
			map[string]domain.PriceSeries{"AAPL": curAAPL},
			nil,
		)

		require.Len(t, set.Entries, 1)
		assert.Contains(t, set.Entries, "AAPL")
		assert.NotContains(t, set.Entries, "ZZZZ")
	})

	t.Run("empty current series becomes a warning, others unaffected", func(t *testing.T) {
		set := BuildComparisonSet(
			[]string{"AAPL", "NEWCO"},
			map[string]domain.PriceSeries{"AAPL": curAAPL, "NEWCO": {}},
			nil,
		)

		require.Len(t, set.Entries, 1)
		assert.Equal(t, "no data available", set.Warnings["NEWCO"])
	})

	t.Run("invalid base price excludes the series with a warning", func(t *testing.T) {
		bad := series(day(2024, time.January, 2), 0, 10)
		set := BuildComparisonSet(
			[]string{"AAPL", "BAD"},
			map[string]domain.PriceSeries{"AAPL": curAAPL, "BAD": bad},
			nil,
		)

		require.Len(t, set.Entries, 1)
		assert.Contains(t, set.Warnings["BAD"], "base price")
	})

	t.Run("invalid prior series keeps the entry without pairing", func(t *testing.T) {
		badPrior := series(day(2023, time.January, 3), -1, 10)
		set := BuildComparisonSet(
			[]string{"AAPL"},
			map[string]domain.PriceSeries{"AAPL": curAAPL},
			map[string]domain.PriceSeries{"AAPL": badPrior},
		)

		require.Contains(t, set.Entries, "AAPL")
		assert.Nil(t, set.Entries["AAPL"].Prior)
		assert.Contains(t, set.Warnings["AAPL"], "prior year excluded")
	})

	t.Run("empty prior series is not a warning", func(t *testing.T) {
		set := BuildComparisonSet(
			[]string{"AAPL"},
			map[string]domain.PriceSeries{"AAPL": curAAPL},
			map[string]domain.PriceSeries{"AAPL": {}},
		)

		require.Contains(t, set.Entries, "AAPL")
		assert.Nil(t, set.Entries["AAPL"].Prior)
		assert.Empty(t, set.Warnings)
	})
}
