package handler

import (
	"time"

	"doseguard/internal/guardrails"
	"doseguard/pkg/units"
)

// GuardrailPayload is the wire form of a derived guardrail.
type GuardrailPayload struct {
	AbsoluteBounds     RangePayload     `json:"absolute_bounds"`
	RecommendedBounds  RangePayload     `json:"recommended_bounds"`
	Unit               string           `json:"unit"`
	StartingSuggestion *QuantityPayload `json:"starting_suggestion,omitempty"`
}

// EvaluateResponse is the wire form of a full snapshot evaluation.
type EvaluateResponse struct {
	SuspendThreshold    GuardrailPayload `json:"suspend_threshold"`
	MaxSuspendThreshold QuantityPayload  `json:"max_suspend_threshold_value"`
	CorrectionRange     GuardrailPayload `json:"correction_range"`
	MinCorrectionRange  QuantityPayload  `json:"min_correction_range_value"`
	InsulinSensitivity  GuardrailPayload `json:"insulin_sensitivity"`
	CarbRatio           GuardrailPayload `json:"carb_ratio"`

	WorkoutOverride  *GuardrailPayload `json:"workout_override,omitempty"`
	PreMealOverride  *GuardrailPayload `json:"pre_meal_override,omitempty"`
	BasalRate        *GuardrailPayload `json:"basal_rate,omitempty"`
	MaximumBasalRate *GuardrailPayload `json:"maximum_basal_rate,omitempty"`
	MaximumBolus     *GuardrailPayload `json:"maximum_bolus,omitempty"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}

// DefaultsResponse lists the static policy guardrails for first-time setup.
type DefaultsResponse struct {
	SuspendThreshold   GuardrailPayload `json:"suspend_threshold"`
	CorrectionRange    GuardrailPayload `json:"correction_range"`
	InsulinSensitivity GuardrailPayload `json:"insulin_sensitivity"`
	CarbRatio          GuardrailPayload `json:"carb_ratio"`
}

func quantityPayload(q units.Quantity) QuantityPayload {
	return QuantityPayload{Value: q.Value(), Unit: q.Unit().Symbol}
}

func rangePayload(r units.ClosedRange) RangePayload {
	return RangePayload{Lower: quantityPayload(r.Lower), Upper: quantityPayload(r.Upper)}
}

func guardrailPayload(g guardrails.Guardrail) GuardrailPayload {
	p := GuardrailPayload{
		AbsoluteBounds:    rangePayload(g.AbsoluteBounds),
		RecommendedBounds: rangePayload(g.RecommendedBounds),
		Unit:              g.Unit.Symbol,
	}
	if g.StartingSuggestion != nil {
		s := quantityPayload(*g.StartingSuggestion)
		p.StartingSuggestion = &s
	}
	return p
}

func guardrailPayloadPtr(g *guardrails.Guardrail) *GuardrailPayload {
	if g == nil {
		return nil
	}
	p := guardrailPayload(*g)
	return &p
}

// FromResult converts a domain result into the wire response.
func FromResult(result *guardrails.EvaluateResult) EvaluateResponse {
	return EvaluateResponse{
		SuspendThreshold:    guardrailPayload(result.SuspendThreshold),
		MaxSuspendThreshold: quantityPayload(result.MaxSuspendThreshold),
		CorrectionRange:     guardrailPayload(result.CorrectionRange),
		MinCorrectionRange:  quantityPayload(result.MinCorrectionRange),
		InsulinSensitivity:  guardrailPayload(result.InsulinSensitivity),
		CarbRatio:           guardrailPayload(result.CarbRatio),
		WorkoutOverride:     guardrailPayloadPtr(result.WorkoutOverride),
		PreMealOverride:     guardrailPayloadPtr(result.PreMealOverride),
		BasalRate:           guardrailPayloadPtr(result.BasalRate),
		MaximumBasalRate:    guardrailPayloadPtr(result.MaximumBasalRate),
		MaximumBolus:        guardrailPayloadPtr(result.MaximumBolus),
		EvaluatedAt:         result.EvaluatedAt,
	}
}
