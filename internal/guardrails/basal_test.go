package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doseguard/pkg/units"
)

func rate(uPerHour float64) *units.Quantity {
	q := units.NewQuantity(uPerHour, units.UnitsPerHour)
	return &q
}

func TestBasalRate(t *testing.T) {
	t.Run("clips device list to deliverable envelope", func(t *testing.T) {
		supported := []float64{0.025, 0.05, 0.1, 0.5, 1, 5, 10, 30.0, 35.0}

		g, err := BasalRate(supported)
		require.NoError(t, err)

		assert.InDelta(t, 0.05, g.AbsoluteBounds.Lower.Value(), 1e-9)
		assert.InDelta(t, 30.0, g.AbsoluteBounds.Upper.Value(), 1e-9)
		assert.Equal(t, g.AbsoluteBounds, g.RecommendedBounds)
		require.NotNil(t, g.StartingSuggestion)
		assert.InDelta(t, 0, g.StartingSuggestion.Value(), 1e-9)
	})

	t.Run("empty device list fails", func(t *testing.T) {
		_, err := BasalRate(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("list with no deliverable rate fails", func(t *testing.T) {
		_, err := BasalRate([]float64{0.025, 31, 40})
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func TestMaximumBasalRateWithSchedule(t *testing.T) {
	supported := []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 3, 5, 10, 15, 20, 25, 30, 35}

	g, err := MaximumBasalRate(supported, rate(1.2), quantityPtr(units.NewQuantity(7, units.GramsPerUnit)), DefaultSnapPrecision)
	require.NoError(t, err)

	// Ceiling: 70/7 = 10, an exact supported rate.
	assert.InDelta(t, 1.2, g.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 10, g.AbsoluteBounds.Upper.Value(), 1e-9)

	// Recommended: snap(2.1*1.2=2.52) = 2, snap(6.4*1.2=7.68) = 5.
	assert.InDelta(t, 2, g.RecommendedBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 5, g.RecommendedBounds.Upper.Value(), 1e-9)
	assert.Nil(t, g.StartingSuggestion)
}

func TestMaximumBasalRateRecommendedClampedIntoAbsolute(t *testing.T) {
	supported := []float64{0.05, 0.5, 1, 2, 3, 4, 5, 6}

	// Ceiling: 70/20 = 3.5 -> snaps down to 3. Recommended raw is
	// [snap(2.1)=2, snap(6.4)=6]; the upper must clamp to the ceiling.
	g, err := MaximumBasalRate(supported, rate(1), quantityPtr(units.NewQuantity(20, units.GramsPerUnit)), DefaultSnapPrecision)
	require.NoError(t, err)

	assert.InDelta(t, 3, g.AbsoluteBounds.Upper.Value(), 1e-9)
	assert.InDelta(t, 2, g.RecommendedBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 3, g.RecommendedBounds.Upper.Value(), 1e-9)
}

func TestMaximumBasalRateWithoutSchedule(t *testing.T) {
	supported := []float64{0.05, 0.1, 0.5, 1, 2, 3, 5, 10, 15, 20, 25, 30, 35}

	g, err := MaximumBasalRate(supported, nil, nil, DefaultSnapPrecision)
	require.NoError(t, err)

	// Carb ratio falls back to the static floor of 2 g/U: 70/2 = 35.
	assert.InDelta(t, 0.05, g.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 35, g.AbsoluteBounds.Upper.Value(), 1e-9)
	assert.Equal(t, g.AbsoluteBounds, g.RecommendedBounds)
	require.NotNil(t, g.StartingSuggestion)
	assert.InDelta(t, 3, g.StartingSuggestion.Value(), 1e-9)
}

func TestMaximumBasalRateEmptyList(t *testing.T) {
	_, err := MaximumBasalRate(nil, rate(1), nil, DefaultSnapPrecision)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
