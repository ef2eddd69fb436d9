package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaximumBolus(t *testing.T) {
	supported := []float64{0.1, 0.5, 1, 2, 5, 10, 15, 20, 25, 30, 35}

	g, err := MaximumBolus(supported)
	require.NoError(t, err)

	// 35 falls outside the (0, 30] ceiling.
	assert.InDelta(t, 0.1, g.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 30, g.AbsoluteBounds.Upper.Value(), 1e-9)

	// Recommended floor skips the smallest volume; ceiling is the greatest
	// volume under the 20 U warning line.
	assert.InDelta(t, 0.5, g.RecommendedBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 15, g.RecommendedBounds.Upper.Value(), 1e-9)

	require.NotNil(t, g.StartingSuggestion)
	assert.InDelta(t, 5, g.StartingSuggestion.Value(), 1e-9)
}

func TestMaximumBolusFailures(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		_, err := MaximumBolus(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("single volume after filtering", func(t *testing.T) {
		_, err := MaximumBolus([]float64{5, 31, 40})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("no volume under the warning line", func(t *testing.T) {
		_, err := MaximumBolus([]float64{20, 25, 30})
		assert.ErrorIs(t, err, ErrNoSupportedValue)
	})
}
