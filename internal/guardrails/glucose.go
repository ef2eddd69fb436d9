package guardrails

import (
	"fmt"

	"doseguard/pkg/units"
)

// GlucoseThreshold wraps a configured glucose safety threshold.
type GlucoseThreshold struct {
	Quantity units.Quantity
}

// GlucoseRangeSchedule is the envelope of a time-varying correction-range
// schedule. The engine never inspects individual schedule entries; it only
// consumes the precomputed extremes.
type GlucoseRangeSchedule struct {
	Range units.ClosedRange
}

// MinLowerBound is the minimum of the lower bounds across all entries.
func (s GlucoseRangeSchedule) MinLowerBound() units.Quantity { return s.Range.Lower }

// Preset selects which correction-range override derivation runs.
type Preset string

const (
	PresetWorkout Preset = "workout"
	PresetPreMeal Preset = "preMeal"
)

// Static policy constants, mg/dL. Built once at init and never mutated.
var (
	suspendThresholdGuardrail = mustGuardrail(
		mustRange(67, 110, units.MilligramsPerDeciliter),
		mustRange(74, 80, units.MilligramsPerDeciliter),
		units.MilligramsPerDeciliter,
		quantityPtr(units.Glucose(80)),
	)
	correctionRangeGuardrail = mustGuardrail(
		mustRange(87, 180, units.MilligramsPerDeciliter),
		mustRange(101, 115, units.MilligramsPerDeciliter),
		units.MilligramsPerDeciliter,
		quantityPtr(units.Glucose(100)),
	)
	insulinSensitivityGuardrail = mustGuardrail(
		mustRange(10, 500, units.MilligramsPerDeciliterPerUnit),
		mustRange(16, 399, units.MilligramsPerDeciliterPerUnit),
		units.MilligramsPerDeciliterPerUnit,
		quantityPtr(units.NewQuantity(50, units.MilligramsPerDeciliterPerUnit)),
	)
	carbRatioGuardrail = mustGuardrail(
		mustRange(2, 150, units.GramsPerUnit),
		mustRange(4, 28, units.GramsPerUnit),
		units.GramsPerUnit,
		quantityPtr(units.NewQuantity(15, units.GramsPerUnit)),
	)
)

// Workout/pre-meal override policy constants, mg/dL.
const (
	workoutAbsoluteLowerFloor = 85
	workoutAbsoluteUpper      = 250
	workoutRecommendedUpper   = 180
	preMealCeiling            = 130
)

// SuspendThreshold returns the fixed guardrail for the glucose level below
// which insulin delivery halts.
func SuspendThreshold() Guardrail { return suspendThresholdGuardrail }

// CorrectionRange returns the fixed guardrail for the target glucose range.
func CorrectionRange() Guardrail { return correctionRangeGuardrail }

// InsulinSensitivity returns the fixed guardrail for insulin sensitivity.
func InsulinSensitivity() Guardrail { return insulinSensitivityGuardrail }

// CarbRatio returns the fixed guardrail for the carbohydrate ratio.
func CarbRatio() Guardrail { return carbRatioGuardrail }

// MaxSuspendThresholdValue caps the suspend threshold at the floor of every
// configured target range: the minimum over the static absolute upper bound,
// the schedule's minimum lower bound, and the pre-meal and workout override
// floors. Absent inputs are excluded from the minimum, so the result never
// exceeds the static upper bound and the function cannot fail. Inputs of a
// non-glucose dimension are likewise excluded; supplying them is a caller
// bug, not a derivable constraint.
func MaxSuspendThresholdValue(scheduleMinLower, preMealLower, workoutLower *units.Quantity) units.Quantity {
	result := suspendThresholdGuardrail.AbsoluteBounds.Upper
	for _, q := range []*units.Quantity{scheduleMinLower, preMealLower, workoutLower} {
		if q == nil {
			continue
		}
		if m, err := units.Min(result, *q); err == nil {
			result = m
		}
	}
	return result
}

// MinCorrectionRangeValue lifts the correction-range floor to the active
// suspend threshold: the glucose target must never sit below the level at
// which delivery suspends. A threshold holding a non-glucose quantity is
// ignored and the static floor stands.
func MinCorrectionRangeValue(suspendThreshold *GlucoseThreshold) units.Quantity {
	floor := correctionRangeGuardrail.AbsoluteBounds.Lower
	if suspendThreshold == nil {
		return floor
	}
	if m, err := units.Max(floor, suspendThreshold.Quantity); err == nil {
		return m
	}
	return floor
}

// CorrectionRangeOverride derives the guardrail for a correction-range
// override preset relative to the suspend threshold and the normal schedule's
// envelope.
func CorrectionRangeOverride(preset Preset, suspendThreshold *GlucoseThreshold, scheduleRange units.ClosedRange) (Guardrail, error) {
	switch preset {
	case PresetWorkout:
		return workoutOverride(suspendThreshold, scheduleRange)
	case PresetPreMeal:
		return preMealOverride(suspendThreshold, scheduleRange)
	default:
		return Guardrail{}, fmt.Errorf("unknown correction range override preset %q", preset)
	}
}

// workoutOverride: workouts intentionally run glucose higher, so the safe
// floor must clear both the suspend threshold and the user's normal high-end
// correction target.
func workoutOverride(suspendThreshold *GlucoseThreshold, scheduleRange units.ClosedRange) (Guardrail, error) {
	absoluteLower := units.Glucose(workoutAbsoluteLowerFloor)
	if suspendThreshold != nil {
		m, err := units.Max(absoluteLower, suspendThreshold.Quantity)
		if err != nil {
			return Guardrail{}, err
		}
		absoluteLower = m
	}
	recommendedLower, err := units.Max(absoluteLower, scheduleRange.Upper)
	if err != nil {
		return Guardrail{}, err
	}

	absolute, err := units.NewClosedRange(absoluteLower, units.Glucose(workoutAbsoluteUpper))
	if err != nil {
		return Guardrail{}, err
	}
	recommended, err := units.NewClosedRange(recommendedLower, units.Glucose(workoutRecommendedUpper))
	if err != nil {
		return Guardrail{}, err
	}
	return NewGuardrail(absolute, recommended, units.MilligramsPerDeciliter, nil)
}

// preMealOverride: pre-meal targets tighten toward the schedule's low end but
// never exceed 130 mg/dL nor fall under the safety floor.
func preMealOverride(suspendThreshold *GlucoseThreshold, scheduleRange units.ClosedRange) (Guardrail, error) {
	lower := suspendThresholdGuardrail.AbsoluteBounds.Lower
	if suspendThreshold != nil {
		lower = suspendThreshold.Quantity
	}

	absolute, err := units.NewClosedRange(lower, units.Glucose(preMealCeiling))
	if err != nil {
		return Guardrail{}, err
	}
	recommendedUpper, err := units.Clamp(scheduleRange.Lower, absolute)
	if err != nil {
		return Guardrail{}, err
	}
	recommended, err := units.NewClosedRange(lower, recommendedUpper)
	if err != nil {
		return Guardrail{}, err
	}
	return NewGuardrail(absolute, recommended, units.MilligramsPerDeciliter, nil)
}
