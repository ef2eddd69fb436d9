package guardrails

import (
	"fmt"
	"sort"

	"doseguard/pkg/units"
)

// Scheduled basal rates are deliverable only inside this envelope, U/h.
const (
	basalRateFloor   = 0.05
	basalRateCeiling = 30.0
)

// The maximum basal rate ceiling derives from a 70 U clinical daily-max proxy
// divided by the most aggressive configured carb ratio; the recommended band
// scales the user's scheduled peak by empirically chosen multipliers.
const (
	maxBasalDailyProxy        = 70.0
	maxBasalRecommendedLowMul = 2.1
	maxBasalRecommendedHiMul  = 6.4
)

// BasalRate derives the schedulable basal-rate guardrail from the
// device-reported supported rates, clipped to the deliverable envelope.
// Returns ErrEmptyInput when no supported rate survives the clip.
func BasalRate(supportedBasalRates []float64) (Guardrail, error) {
	allowed := filterSorted(supportedBasalRates, func(r float64) bool {
		return r >= basalRateFloor && r <= basalRateCeiling
	})
	if len(allowed) == 0 {
		return Guardrail{}, fmt.Errorf("basal rate: no supported rate in [%g, %g]: %w",
			basalRateFloor, basalRateCeiling, ErrEmptyInput)
	}

	bounds, err := units.NewClosedRange(
		units.NewQuantity(allowed[0], units.UnitsPerHour),
		units.NewQuantity(allowed[len(allowed)-1], units.UnitsPerHour),
	)
	if err != nil {
		return Guardrail{}, err
	}
	return NewGuardrail(bounds, bounds, units.UnitsPerHour,
		quantityPtr(units.NewQuantity(0, units.UnitsPerHour)))
}

// MaximumBasalRate derives the max-basal guardrail. The absolute ceiling is
// the daily-max proxy divided by the lowest configured carb ratio (falling
// back to the static carb-ratio floor), snapped down onto a supported rate.
// When the user already has a basal schedule, the recommended band scales its
// peak and is clamped into the absolute range; otherwise both ranges span
// from the device floor to the ceiling with a starting suggestion of 3 U/h.
func MaximumBasalRate(supportedBasalRates []float64, scheduledBasalUpper, lowestCarbRatio *units.Quantity, precision int32) (Guardrail, error) {
	if len(supportedBasalRates) == 0 {
		return Guardrail{}, fmt.Errorf("maximum basal rate: %w", ErrEmptyInput)
	}
	rates := filterSorted(supportedBasalRates, func(float64) bool { return true })

	carbRatio := carbRatioGuardrail.AbsoluteBounds.Lower.Value()
	if lowestCarbRatio != nil {
		v, err := lowestCarbRatio.ValueIn(units.GramsPerUnit)
		if err != nil {
			return Guardrail{}, err
		}
		carbRatio = v
	}
	ceiling, err := snapToSupported(maxBasalDailyProxy/carbRatio, rates, precision)
	if err != nil {
		return Guardrail{}, err
	}

	if scheduledBasalUpper == nil {
		bounds, err := units.NewClosedRange(
			units.NewQuantity(rates[0], units.UnitsPerHour),
			units.NewQuantity(ceiling, units.UnitsPerHour),
		)
		if err != nil {
			return Guardrail{}, err
		}
		return NewGuardrail(bounds, bounds, units.UnitsPerHour,
			quantityPtr(units.NewQuantity(3, units.UnitsPerHour)))
	}

	scheduledUpper, err := scheduledBasalUpper.ValueIn(units.UnitsPerHour)
	if err != nil {
		return Guardrail{}, err
	}
	absolute, err := units.NewClosedRange(
		units.NewQuantity(scheduledUpper, units.UnitsPerHour),
		units.NewQuantity(ceiling, units.UnitsPerHour),
	)
	if err != nil {
		return Guardrail{}, err
	}

	recommendedLower, err := snapToSupported(maxBasalRecommendedLowMul*scheduledUpper, rates, precision)
	if err != nil {
		return Guardrail{}, err
	}
	recommendedUpper, err := snapToSupported(maxBasalRecommendedHiMul*scheduledUpper, rates, precision)
	if err != nil {
		return Guardrail{}, err
	}
	recommendedRaw, err := units.NewClosedRange(
		units.NewQuantity(recommendedLower, units.UnitsPerHour),
		units.NewQuantity(recommendedUpper, units.UnitsPerHour),
	)
	if err != nil {
		return Guardrail{}, err
	}
	recommended, err := recommendedRaw.ClampedTo(absolute)
	if err != nil {
		return Guardrail{}, err
	}
	return NewGuardrail(absolute, recommended, units.UnitsPerHour, nil)
}

// filterSorted returns an ascending copy of values keeping only those
// matching keep. Device lists are documented ascending but not trusted to be.
func filterSorted(values []float64, keep func(float64) bool) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}
