package handler

import (
	"fmt"

	"doseguard/internal/guardrails"
	"doseguard/pkg/units"
)

// QuantityPayload is the wire form of a unit-tagged value.
type QuantityPayload struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RangePayload is the wire form of an inclusive bound pair.
type RangePayload struct {
	Lower QuantityPayload `json:"lower"`
	Upper QuantityPayload `json:"upper"`
}

// EvaluateRequest is the wire form of one settings snapshot. Absent optional
// fields mean the user has not configured that setting yet.
type EvaluateRequest struct {
	SupportedBasalRates   []float64 `json:"supported_basal_rates,omitempty"`
	SupportedBolusVolumes []float64 `json:"supported_bolus_volumes,omitempty"`

	SuspendThreshold          *QuantityPayload `json:"suspend_threshold,omitempty"`
	CorrectionScheduleRange   *RangePayload    `json:"correction_schedule_range,omitempty"`
	PreMealRange              *RangePayload    `json:"pre_meal_range,omitempty"`
	WorkoutRange              *RangePayload    `json:"workout_range,omitempty"`
	ScheduledBasalRateUpper   *QuantityPayload `json:"scheduled_basal_rate_upper,omitempty"`
	LowestConfiguredCarbRatio *QuantityPayload `json:"lowest_configured_carb_ratio,omitempty"`
}

func (p QuantityPayload) toQuantity(want units.Dimension) (units.Quantity, error) {
	unit, ok := units.UnitFromSymbol(p.Unit)
	if !ok {
		return units.Quantity{}, fmt.Errorf("unknown unit %q", p.Unit)
	}
	if unit.Dimension != want {
		return units.Quantity{}, fmt.Errorf("unit %q has the wrong dimension for this field", p.Unit)
	}
	return units.NewQuantity(p.Value, unit), nil
}

func (p RangePayload) toRange(want units.Dimension) (units.ClosedRange, error) {
	lower, err := p.Lower.toQuantity(want)
	if err != nil {
		return units.ClosedRange{}, err
	}
	upper, err := p.Upper.toQuantity(want)
	if err != nil {
		return units.ClosedRange{}, err
	}
	return units.NewClosedRange(lower, upper)
}

// ToDomain validates units and range ordering and builds the domain request.
func (r EvaluateRequest) ToDomain(snapPrecision int32) (guardrails.EvaluateRequest, error) {
	req := guardrails.EvaluateRequest{
		SupportedBasalRates:   r.SupportedBasalRates,
		SupportedBolusVolumes: r.SupportedBolusVolumes,
		SnapPrecision:         snapPrecision,
	}

	if r.SuspendThreshold != nil {
		q, err := r.SuspendThreshold.toQuantity(units.DimensionGlucose)
		if err != nil {
			return guardrails.EvaluateRequest{}, fmt.Errorf("suspend_threshold: %w", err)
		}
		req.SuspendThreshold = &guardrails.GlucoseThreshold{Quantity: q}
	}
	if r.CorrectionScheduleRange != nil {
		rng, err := r.CorrectionScheduleRange.toRange(units.DimensionGlucose)
		if err != nil {
			return guardrails.EvaluateRequest{}, fmt.Errorf("correction_schedule_range: %w", err)
		}
		req.CorrectionSchedule = &guardrails.GlucoseRangeSchedule{Range: rng}
	}
	if r.PreMealRange != nil {
		rng, err := r.PreMealRange.toRange(units.DimensionGlucose)
		if err != nil {
			return guardrails.EvaluateRequest{}, fmt.Errorf("pre_meal_range: %w", err)
		}
		req.PreMealRange = &rng
	}
	if r.WorkoutRange != nil {
		rng, err := r.WorkoutRange.toRange(units.DimensionGlucose)
		if err != nil {
			return guardrails.EvaluateRequest{}, fmt.Errorf("workout_range: %w", err)
		}
		req.WorkoutRange = &rng
	}
	if r.ScheduledBasalRateUpper != nil {
		q, err := r.ScheduledBasalRateUpper.toQuantity(units.DimensionInsulinRate)
		if err != nil {
			return guardrails.EvaluateRequest{}, fmt.Errorf("scheduled_basal_rate_upper: %w", err)
		}
		req.ScheduledBasalUpper = &q
	}
	if r.LowestConfiguredCarbRatio != nil {
		q, err := r.LowestConfiguredCarbRatio.toQuantity(units.DimensionCarbRatio)
		if err != nil {
			return guardrails.EvaluateRequest{}, fmt.Errorf("lowest_configured_carb_ratio: %w", err)
		}
		req.LowestCarbRatio = &q
	}

	return req, nil
}
