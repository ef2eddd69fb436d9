package units

import "fmt"

// ClosedRange is an inclusive [Lower, Upper] interval over Quantity.
// Both endpoints share a dimension and lower never exceeds upper.
type ClosedRange struct {
	Lower Quantity
	Upper Quantity
}

// NewClosedRange validates endpoint ordering and dimension agreement.
func NewClosedRange(lower, upper Quantity) (ClosedRange, error) {
	c, err := lower.Compare(upper)
	if err != nil {
		return ClosedRange{}, err
	}
	if c > 0 {
		return ClosedRange{}, fmt.Errorf("units: range lower %s exceeds upper %s", lower, upper)
	}
	return ClosedRange{Lower: lower, Upper: upper}, nil
}

// Contains reports whether value lies inside the range (inclusive).
func (r ClosedRange) Contains(value Quantity) bool {
	lo, err1 := value.Compare(r.Lower)
	hi, err2 := value.Compare(r.Upper)
	return err1 == nil && err2 == nil && lo >= 0 && hi <= 0
}

// ClampedTo clamps each endpoint into other; disjoint ranges collapse onto
// the nearer edge of other.
func (r ClosedRange) ClampedTo(other ClosedRange) (ClosedRange, error) {
	lower, err := Clamp(r.Lower, other)
	if err != nil {
		return ClosedRange{}, err
	}
	upper, err := Clamp(r.Upper, other)
	if err != nil {
		return ClosedRange{}, err
	}
	return ClosedRange{Lower: lower, Upper: upper}, nil
}

// Clamp forces value into the range.
func Clamp(value Quantity, r ClosedRange) (Quantity, error) {
	v, err := Max(value, r.Lower)
	if err != nil {
		return Quantity{}, err
	}
	return Min(v, r.Upper)
}
