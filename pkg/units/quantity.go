// Package units provides the minimal unit-aware quantity layer the guardrail
// engine computes over. Quantities are immutable value types; comparisons and
// conversions are only defined within a single physical dimension.
package units

import (
	"fmt"
	"math"
)

// Dimension groups units that are mutually convertible.
type Dimension string

const (
	DimensionGlucose            Dimension = "glucose"
	DimensionInsulinSensitivity Dimension = "insulin_sensitivity"
	DimensionCarbRatio          Dimension = "carb_ratio"
	DimensionInsulinRate        Dimension = "insulin_rate"
	DimensionInsulin            Dimension = "insulin"
)

// Unit is a named physical unit. Conversion between units of the same
// dimension goes through the dimension's canonical unit using the scale
// factor (value_in_canonical = value * scale).
type Unit struct {
	Symbol    string
	Dimension Dimension
	scale     float64
}

// mmol/L glucose converts to mg/dL using the molar mass of glucose
// (180.18 g/mol), i.e. 1 mmol/L = 18.018 mg/dL.
const mgdLPerMmolL = 18.018

var (
	MilligramsPerDeciliter        = Unit{Symbol: "mg/dL", Dimension: DimensionGlucose, scale: 1}
	MillimolesPerLiter            = Unit{Symbol: "mmol/L", Dimension: DimensionGlucose, scale: mgdLPerMmolL}
	MilligramsPerDeciliterPerUnit = Unit{Symbol: "mg/dL/U", Dimension: DimensionInsulinSensitivity, scale: 1}
	GramsPerUnit                  = Unit{Symbol: "g/U", Dimension: DimensionCarbRatio, scale: 1}
	UnitsPerHour                  = Unit{Symbol: "U/h", Dimension: DimensionInsulinRate, scale: 1}
	InsulinUnits                  = Unit{Symbol: "U", Dimension: DimensionInsulin, scale: 1}
)

// UnitFromSymbol resolves a wire-format unit symbol to a known unit.
func UnitFromSymbol(symbol string) (Unit, bool) {
	for _, u := range []Unit{
		MilligramsPerDeciliter,
		MillimolesPerLiter,
		MilligramsPerDeciliterPerUnit,
		GramsPerUnit,
		UnitsPerHour,
		InsulinUnits,
	} {
		if u.Symbol == symbol {
			return u, true
		}
	}
	return Unit{}, false
}

// equalityTolerance absorbs float noise when comparing quantities.
const equalityTolerance = 1e-9

// Quantity is an immutable (unit, value) pair.
type Quantity struct {
	unit  Unit
	value float64
}

// NewQuantity builds a quantity in the given unit.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{unit: unit, value: value}
}

// Glucose is shorthand for a mg/dL quantity; the engine's policy constants
// are all expressed in mg/dL.
func Glucose(mgdL float64) Quantity {
	return NewQuantity(mgdL, MilligramsPerDeciliter)
}

// Unit returns the unit the quantity was constructed in.
func (q Quantity) Unit() Unit { return q.unit }

// Value returns the raw value in the quantity's own unit.
func (q Quantity) Value() float64 { return q.value }

// ValueIn converts the quantity's value into a compatible unit.
func (q Quantity) ValueIn(unit Unit) (float64, error) {
	if q.unit.Dimension != unit.Dimension {
		return 0, fmt.Errorf("units: cannot convert %s to %s: dimension mismatch", q.unit.Symbol, unit.Symbol)
	}
	return q.value * q.unit.scale / unit.scale, nil
}

// Compare orders two quantities of the same dimension: -1, 0, or +1.
// Values within the equality tolerance compare equal.
func (q Quantity) Compare(other Quantity) (int, error) {
	ov, err := other.ValueIn(q.unit)
	if err != nil {
		return 0, err
	}
	switch {
	case math.Abs(q.value-ov) <= equalityTolerance:
		return 0, nil
	case q.value < ov:
		return -1, nil
	default:
		return 1, nil
	}
}

// Equal reports tolerance-based equality within the same dimension.
func (q Quantity) Equal(other Quantity) bool {
	c, err := q.Compare(other)
	return err == nil && c == 0
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.value, q.unit.Symbol)
}

// Min returns the smaller of two same-dimension quantities.
func Min(a, b Quantity) (Quantity, error) {
	c, err := a.Compare(b)
	if err != nil {
		return Quantity{}, err
	}
	if c <= 0 {
		return a, nil
	}
	return b, nil
}

// Max returns the larger of two same-dimension quantities.
func Max(a, b Quantity) (Quantity, error) {
	c, err := a.Compare(b)
	if err != nil {
		return Quantity{}, err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}
