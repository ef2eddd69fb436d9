package guardrails

import "errors"

// Sentinel errors for derivation preconditions. Derivations return these
// (optionally wrapped) so callers can translate them into transport errors.
//
// These represent configuration preconditions, not recoverable runtime
// conditions: a missing device capability list or an unreachable snap target
// indicates the caller assembled an inconsistent settings snapshot, and the
// derivation must fail loudly rather than substitute a default.
var (
	// ErrEmptyInput: a device-supported value list is empty after filtering.
	ErrEmptyInput = errors.New("supported value list is empty")

	// ErrNoSupportedValue: the snap target lies below every supported value.
	ErrNoSupportedValue = errors.New("no supported value at or below target")

	// ErrBoundsOrder: recommended bounds escape the absolute bounds. Always
	// a logic bug in a derivation formula, never user input.
	ErrBoundsOrder = errors.New("recommended bounds exceed absolute bounds")
)

// DerivationError tags a failure with the parameter family it occurred in so
// callers can account for failures per parameter. It wraps the underlying
// sentinel, so errors.Is keeps working through it.
type DerivationError struct {
	Parameter string
	Err       error
}

func (e *DerivationError) Error() string { return e.Parameter + ": " + e.Err.Error() }

func (e *DerivationError) Unwrap() error { return e.Err }
