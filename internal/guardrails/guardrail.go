// Package guardrails derives the safety envelopes for automated
// insulin-delivery dosing parameters: for each parameter it computes a hard
// absolute range, a narrower recommended range the UI nudges users toward,
// and an optional starting suggestion for first-time setup.
//
// Every derivation is a pure function of its explicit inputs plus the static
// policy table in this package; nothing here holds mutable state, so all
// functions are safe for concurrent use.
package guardrails

import (
	"fmt"

	"doseguard/pkg/units"
)

// Guardrail is the derived envelope for one dosing parameter.
type Guardrail struct {
	AbsoluteBounds     units.ClosedRange
	RecommendedBounds  units.ClosedRange
	Unit               units.Unit
	StartingSuggestion *units.Quantity
}

// NewGuardrail validates the containment contract: absolute.lower ≤
// recommended.lower ≤ recommended.upper ≤ absolute.upper. Derivation formulas
// are expected to uphold this; a violation is a logic bug and surfaces as
// ErrBoundsOrder. The starting suggestion is not checked here: the basal-rate
// derivation deliberately suggests 0 U/h below its absolute floor, matching
// established pump onboarding behavior.
func NewGuardrail(absolute, recommended units.ClosedRange, unit units.Unit, suggestion *units.Quantity) (Guardrail, error) {
	if !absolute.Contains(recommended.Lower) || !absolute.Contains(recommended.Upper) {
		return Guardrail{}, fmt.Errorf("%w: recommended %s-%s vs absolute %s-%s",
			ErrBoundsOrder, recommended.Lower, recommended.Upper, absolute.Lower, absolute.Upper)
	}
	return Guardrail{
		AbsoluteBounds:     absolute,
		RecommendedBounds:  recommended,
		Unit:               unit,
		StartingSuggestion: suggestion,
	}, nil
}

// MinValue returns the absolute floor of the guardrail.
func (g Guardrail) MinValue() units.Quantity { return g.AbsoluteBounds.Lower }

// MaxValue returns the absolute ceiling of the guardrail.
func (g Guardrail) MaxValue() units.Quantity { return g.AbsoluteBounds.Upper }

// Classification places a chosen value relative to a guardrail's envelopes.
type Classification string

const (
	OutsideAbsolute   Classification = "outside_absolute"
	BelowRecommended  Classification = "below_recommended"
	WithinRecommended Classification = "within_recommended"
	AboveRecommended  Classification = "above_recommended"
)

// Classify reports where value sits relative to the guardrail. Validation of
// chosen values is a consumer concern; this only makes the bound semantics
// queryable.
func (g Guardrail) Classify(value units.Quantity) Classification {
	if !g.AbsoluteBounds.Contains(value) {
		return OutsideAbsolute
	}
	if c, err := value.Compare(g.RecommendedBounds.Lower); err == nil && c < 0 {
		return BelowRecommended
	}
	if c, err := value.Compare(g.RecommendedBounds.Upper); err == nil && c > 0 {
		return AboveRecommended
	}
	return WithinRecommended
}

// mustGuardrail backs the static policy table; the constants are fixed at
// compile time, so a failure here is unreachable short of editing the table.
func mustGuardrail(absolute, recommended units.ClosedRange, unit units.Unit, suggestion *units.Quantity) Guardrail {
	g, err := NewGuardrail(absolute, recommended, unit, suggestion)
	if err != nil {
		panic(err)
	}
	return g
}

func mustRange(lower, upper float64, unit units.Unit) units.ClosedRange {
	r, err := units.NewClosedRange(units.NewQuantity(lower, unit), units.NewQuantity(upper, unit))
	if err != nil {
		panic(err)
	}
	return r
}

func quantityPtr(q units.Quantity) *units.Quantity { return &q }
