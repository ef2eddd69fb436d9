package guardrails

import (
	"time"

	"doseguard/pkg/units"
)

// EvaluateRequest is one consistent snapshot of the settings a review pass
// derives bounds from. Optional fields are nil when the user has not yet
// configured them; nil device lists mean no pump is paired, while an empty
// list is a precondition violation surfaced by the derivation itself.
type EvaluateRequest struct {
	SupportedBasalRates   []float64
	SupportedBolusVolumes []float64

	SuspendThreshold   *GlucoseThreshold
	CorrectionSchedule *GlucoseRangeSchedule
	PreMealRange       *units.ClosedRange
	WorkoutRange       *units.ClosedRange

	ScheduledBasalUpper *units.Quantity
	LowestCarbRatio     *units.Quantity

	// SnapPrecision controls discrete-list rounding; zero means the default.
	SnapPrecision int32
}

// EvaluateResult carries every guardrail derivable from the snapshot.
// Pointer fields are nil when their inputs were absent from the request.
type EvaluateResult struct {
	SuspendThreshold    Guardrail
	MaxSuspendThreshold units.Quantity
	CorrectionRange     Guardrail
	MinCorrectionRange  units.Quantity
	InsulinSensitivity  Guardrail
	CarbRatio           Guardrail

	WorkoutOverride  *Guardrail
	PreMealOverride  *Guardrail
	BasalRate        *Guardrail
	MaximumBasalRate *Guardrail
	MaximumBolus     *Guardrail

	EvaluatedAt time.Time
}

// Service derives guardrails for whole settings snapshots. It holds no state;
// the goal is to keep cross-parameter sequencing centralized and testable.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Evaluate runs every derivation the snapshot has inputs for. Derivations
// are sequenced so cross-parameter constraints consume already-derived
// values: the suspend threshold bounds feed the correction-range family, and
// the lowest carb ratio feeds the max-basal ceiling. Any derivation error
// aborts the evaluation; a partially derived envelope set must never reach
// a settings UI.
func (s *Service) Evaluate(req EvaluateRequest) (*EvaluateResult, error) {
	precision := req.SnapPrecision
	if precision == 0 {
		precision = DefaultSnapPrecision
	}

	result := &EvaluateResult{
		SuspendThreshold:   SuspendThreshold(),
		CorrectionRange:    CorrectionRange(),
		InsulinSensitivity: InsulinSensitivity(),
		CarbRatio:          CarbRatio(),
		MinCorrectionRange: MinCorrectionRangeValue(req.SuspendThreshold),
		EvaluatedAt:        time.Now().UTC(),
	}

	var scheduleMinLower, preMealLower, workoutLower *units.Quantity
	if req.CorrectionSchedule != nil {
		q := req.CorrectionSchedule.MinLowerBound()
		scheduleMinLower = &q
	}
	if req.PreMealRange != nil {
		preMealLower = &req.PreMealRange.Lower
	}
	if req.WorkoutRange != nil {
		workoutLower = &req.WorkoutRange.Lower
	}
	result.MaxSuspendThreshold = MaxSuspendThresholdValue(scheduleMinLower, preMealLower, workoutLower)

	if req.CorrectionSchedule != nil {
		workout, err := CorrectionRangeOverride(PresetWorkout, req.SuspendThreshold, req.CorrectionSchedule.Range)
		if err != nil {
			return nil, &DerivationError{Parameter: "workout_override", Err: err}
		}
		preMeal, err := CorrectionRangeOverride(PresetPreMeal, req.SuspendThreshold, req.CorrectionSchedule.Range)
		if err != nil {
			return nil, &DerivationError{Parameter: "pre_meal_override", Err: err}
		}
		result.WorkoutOverride = &workout
		result.PreMealOverride = &preMeal
	}

	if req.SupportedBasalRates != nil {
		basal, err := BasalRate(req.SupportedBasalRates)
		if err != nil {
			return nil, &DerivationError{Parameter: "basal_rate", Err: err}
		}
		maxBasal, err := MaximumBasalRate(req.SupportedBasalRates, req.ScheduledBasalUpper, req.LowestCarbRatio, precision)
		if err != nil {
			return nil, &DerivationError{Parameter: "maximum_basal_rate", Err: err}
		}
		result.BasalRate = &basal
		result.MaximumBasalRate = &maxBasal
	}

	if req.SupportedBolusVolumes != nil {
		maxBolus, err := MaximumBolus(req.SupportedBolusVolumes)
		if err != nil {
			return nil, &DerivationError{Parameter: "maximum_bolus", Err: err}
		}
		result.MaximumBolus = &maxBolus
	}

	return result, nil
}
