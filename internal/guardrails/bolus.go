package guardrails

import (
	"fmt"

	"doseguard/pkg/units"
)

// 30 U is the hard safety ceiling for a single bolus; 20 U is the softer
// warning line below which the recommended band must stay.
const (
	bolusAbsoluteCeiling = 30.0
	bolusWarningLine     = 20.0
)

// MaximumBolus derives the max-bolus guardrail from the device-reported
// supported volumes, clipped to (0, 30] U. The recommended floor skips the
// smallest supported volume, which is too granular to be a safe default
// minimum, and the recommended ceiling is the greatest volume under the
// warning line. Starting suggestion is 5 U.
func MaximumBolus(supportedBolusVolumes []float64) (Guardrail, error) {
	allowed := filterSorted(supportedBolusVolumes, func(v float64) bool {
		return v > 0 && v <= bolusAbsoluteCeiling
	})
	if len(allowed) < 2 {
		return Guardrail{}, fmt.Errorf("maximum bolus: need at least two supported volumes in (0, %g]: %w",
			bolusAbsoluteCeiling, ErrEmptyInput)
	}

	absolute, err := units.NewClosedRange(
		units.NewQuantity(allowed[0], units.InsulinUnits),
		units.NewQuantity(allowed[len(allowed)-1], units.InsulinUnits),
	)
	if err != nil {
		return Guardrail{}, err
	}

	recommendedUpper := 0.0
	for _, v := range allowed {
		if v < bolusWarningLine {
			recommendedUpper = v
		}
	}
	if recommendedUpper == 0 {
		return Guardrail{}, fmt.Errorf("maximum bolus: no supported volume below %g: %w",
			bolusWarningLine, ErrNoSupportedValue)
	}
	recommended, err := units.NewClosedRange(
		units.NewQuantity(allowed[1], units.InsulinUnits),
		units.NewQuantity(recommendedUpper, units.InsulinUnits),
	)
	if err != nil {
		return Guardrail{}, err
	}
	return NewGuardrail(absolute, recommended, units.InsulinUnits,
		quantityPtr(units.NewQuantity(5, units.InsulinUnits)))
}
