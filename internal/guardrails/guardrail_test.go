package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doseguard/pkg/units"
)

func TestStaticGuardrailInvariants(t *testing.T) {
	statics := map[string]Guardrail{
		"suspend threshold":   SuspendThreshold(),
		"correction range":    CorrectionRange(),
		"insulin sensitivity": InsulinSensitivity(),
		"carb ratio":          CarbRatio(),
	}

	for name, g := range statics {
		t.Run(name, func(t *testing.T) {
			assert.True(t, g.AbsoluteBounds.Contains(g.RecommendedBounds.Lower),
				"recommended lower escapes absolute bounds")
			assert.True(t, g.AbsoluteBounds.Contains(g.RecommendedBounds.Upper),
				"recommended upper escapes absolute bounds")
			require.NotNil(t, g.StartingSuggestion)
			assert.True(t, g.AbsoluteBounds.Contains(*g.StartingSuggestion),
				"starting suggestion escapes absolute bounds")
		})
	}
}

func TestStaticGuardrailValues(t *testing.T) {
	st := SuspendThreshold()
	assert.InDelta(t, 67, st.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 110, st.AbsoluteBounds.Upper.Value(), 1e-9)
	assert.InDelta(t, 74, st.RecommendedBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 80, st.RecommendedBounds.Upper.Value(), 1e-9)
	assert.InDelta(t, 80, st.StartingSuggestion.Value(), 1e-9)

	cr := CorrectionRange()
	assert.InDelta(t, 87, cr.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 180, cr.AbsoluteBounds.Upper.Value(), 1e-9)
	assert.InDelta(t, 100, cr.StartingSuggestion.Value(), 1e-9)

	sens := InsulinSensitivity()
	assert.InDelta(t, 10, sens.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 500, sens.AbsoluteBounds.Upper.Value(), 1e-9)
	assert.InDelta(t, 16, sens.RecommendedBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 399, sens.RecommendedBounds.Upper.Value(), 1e-9)

	ratio := CarbRatio()
	assert.InDelta(t, 2, ratio.AbsoluteBounds.Lower.Value(), 1e-9)
	assert.InDelta(t, 150, ratio.AbsoluteBounds.Upper.Value(), 1e-9)
	assert.InDelta(t, 15, ratio.StartingSuggestion.Value(), 1e-9)
}

func TestNewGuardrailRejectsEscapedRecommended(t *testing.T) {
	absolute := mustRange(87, 180, units.MilligramsPerDeciliter)
	recommended := mustRange(80, 115, units.MilligramsPerDeciliter)

	_, err := NewGuardrail(absolute, recommended, units.MilligramsPerDeciliter, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBoundsOrder)
}

func TestClassify(t *testing.T) {
	g := CorrectionRange() // absolute 87-180, recommended 101-115 mg/dL

	tests := []struct {
		name  string
		value float64
		want  Classification
	}{
		{"below absolute floor", 80, OutsideAbsolute},
		{"at absolute floor", 87, BelowRecommended},
		{"just under recommended", 100, BelowRecommended},
		{"at recommended floor", 101, WithinRecommended},
		{"inside recommended", 110, WithinRecommended},
		{"at recommended ceiling", 115, WithinRecommended},
		{"above recommended", 120, AboveRecommended},
		{"at absolute ceiling", 180, AboveRecommended},
		{"above absolute ceiling", 200, OutsideAbsolute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Classify(units.Glucose(tt.value)))
		})
	}
}

func TestClassifyAcrossUnits(t *testing.T) {
	g := CorrectionRange()

	// 6.105 mmol/L is exactly 110 mg/dL.
	value := units.NewQuantity(6.105, units.MillimolesPerLiter)
	assert.Equal(t, WithinRecommended, g.Classify(value))
}
