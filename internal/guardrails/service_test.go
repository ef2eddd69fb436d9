package guardrails

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"doseguard/pkg/units"
)

// Service tests exercise the cross-parameter sequencing: individual
// derivations are covered by their own tests, so these focus on which
// guardrails a snapshot produces and how errors abort the pass.

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = NewService()
}

func (s *ServiceSuite) fullRequest() EvaluateRequest {
	schedule := mustRange(100, 120, units.MilligramsPerDeciliter)
	return EvaluateRequest{
		SupportedBasalRates:   []float64{0.05, 0.1, 0.5, 1, 2, 3, 5, 10, 15, 20, 25, 30, 35},
		SupportedBolusVolumes: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 20, 25, 30},
		SuspendThreshold:      threshold(75),
		CorrectionSchedule:    &GlucoseRangeSchedule{Range: schedule},
		ScheduledBasalUpper:   rate(1.2),
		LowestCarbRatio:       quantityPtr(units.NewQuantity(7, units.GramsPerUnit)),
	}
}

func (s *ServiceSuite) TestEvaluateFullSnapshot() {
	result, err := s.service.Evaluate(s.fullRequest())
	s.Require().NoError(err)

	s.InDelta(100, result.MaxSuspendThreshold.Value(), 1e-9)
	s.InDelta(87, result.MinCorrectionRange.Value(), 1e-9)

	s.Require().NotNil(result.WorkoutOverride)
	s.InDelta(120, result.WorkoutOverride.RecommendedBounds.Lower.Value(), 1e-9)
	s.Require().NotNil(result.PreMealOverride)
	s.InDelta(100, result.PreMealOverride.RecommendedBounds.Upper.Value(), 1e-9)

	s.Require().NotNil(result.BasalRate)
	s.InDelta(0.05, result.BasalRate.AbsoluteBounds.Lower.Value(), 1e-9)
	s.Require().NotNil(result.MaximumBasalRate)
	s.InDelta(10, result.MaximumBasalRate.AbsoluteBounds.Upper.Value(), 1e-9)
	s.Require().NotNil(result.MaximumBolus)
	s.InDelta(30, result.MaximumBolus.AbsoluteBounds.Upper.Value(), 1e-9)
}

func (s *ServiceSuite) TestEvaluateMinimalSnapshot() {
	result, err := s.service.Evaluate(EvaluateRequest{})
	s.Require().NoError(err)

	// Statics always derive; everything optional stays nil.
	s.InDelta(110, result.MaxSuspendThreshold.Value(), 1e-9)
	s.InDelta(87, result.MinCorrectionRange.Value(), 1e-9)
	s.Nil(result.WorkoutOverride)
	s.Nil(result.PreMealOverride)
	s.Nil(result.BasalRate)
	s.Nil(result.MaximumBasalRate)
	s.Nil(result.MaximumBolus)
}

func (s *ServiceSuite) TestEvaluateEmptyDeviceListAborts() {
	req := s.fullRequest()
	req.SupportedBasalRates = []float64{}

	_, err := s.service.Evaluate(req)
	s.Require().Error(err)
	s.ErrorIs(err, ErrEmptyInput)
}

func (s *ServiceSuite) TestEvaluateTagsFailedParameterFamily() {
	tests := []struct {
		name          string
		mutate        func(req *EvaluateRequest)
		wantParameter string
	}{
		{
			name:          "empty basal list",
			mutate:        func(req *EvaluateRequest) { req.SupportedBasalRates = []float64{} },
			wantParameter: "basal_rate",
		},
		{
			name:          "single bolus volume",
			mutate:        func(req *EvaluateRequest) { req.SupportedBolusVolumes = []float64{5} },
			wantParameter: "maximum_bolus",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := s.fullRequest()
			tt.mutate(&req)

			_, err := s.service.Evaluate(req)
			s.Require().Error(err)

			var de *DerivationError
			s.Require().ErrorAs(err, &de)
			s.Equal(tt.wantParameter, de.Parameter)
		})
	}
}

func (s *ServiceSuite) TestEvaluateIsIdempotent() {
	req := s.fullRequest()

	first, err := s.service.Evaluate(req)
	s.Require().NoError(err)
	second, err := s.service.Evaluate(req)
	s.Require().NoError(err)

	// No hidden state drift between identical calls.
	second.EvaluatedAt = first.EvaluatedAt
	s.Equal(first, second)
}
