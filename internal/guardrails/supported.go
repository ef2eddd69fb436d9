package guardrails

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultSnapPrecision is the decimal precision used when matching a target
// against a device-supported value list.
const DefaultSnapPrecision int32 = 3

// snapToSupported maps a continuous target onto a device-supported discrete
// value. The target is rounded to precision decimal places; an exact match in
// the supported list wins, otherwise the greatest supported value strictly
// below the raw target is returned. Truncation always goes down: a derived
// bound must land on a rate the pump can actually deliver.
//
// Returns ErrEmptyInput when the list is empty and ErrNoSupportedValue when
// the target is below every supported value; both are caller preconditions.
func snapToSupported(target float64, supported []float64, precision int32) (float64, error) {
	if len(supported) == 0 {
		return 0, fmt.Errorf("snap %v: %w", target, ErrEmptyInput)
	}

	values := make([]float64, len(supported))
	copy(values, supported)
	sort.Float64s(values)

	rounded := decimal.NewFromFloat(target).Round(precision)
	for _, v := range values {
		if decimal.NewFromFloat(v).Equal(rounded) {
			return v, nil
		}
	}

	// No exact match: truncate down to the nearest supported value.
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] < target {
			return values[i], nil
		}
	}
	return 0, fmt.Errorf("snap %v to %v: %w", target, values, ErrNoSupportedValue)
}
