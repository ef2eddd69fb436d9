package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"doseguard/internal/guardrails"
	"doseguard/internal/guardrails/metrics"
	"doseguard/pkg/derrors"
	"doseguard/pkg/platform/httputil"
	"doseguard/pkg/requestcontext"
)

// Service defines the evaluation operation the handler delegates to.
type Service interface {
	Evaluate(req guardrails.EvaluateRequest) (*guardrails.EvaluateResult, error)
}

// Handler wires guardrail endpoints to the derivation service.
type Handler struct {
	service       Service
	logger        *slog.Logger
	metrics       *metrics.Metrics
	snapPrecision int32
}

// New constructs a guardrails handler with its dependencies.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics, snapPrecision int32) *Handler {
	return &Handler{
		service:       service,
		logger:        logger,
		metrics:       metrics,
		snapPrecision: snapPrecision,
	}
}

// Register mounts guardrail endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/guardrails/evaluate", h.HandleEvaluate)
	r.Get("/guardrails/defaults", h.HandleDefaults)
}

// HandleEvaluate handles POST /guardrails/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[EvaluateRequest](w, r)
	if !ok {
		h.metrics.IncrementEvaluation("bad_request")
		return
	}

	domainReq, err := req.ToDomain(h.snapPrecision)
	if err != nil {
		h.logger.WarnContext(ctx, "snapshot rejected",
			"request_id", requestID,
			"error", err,
		)
		h.metrics.IncrementEvaluation("bad_request")
		httputil.WriteError(w, derrors.Wrap(derrors.CodeBadRequest, err.Error(), err))
		return
	}

	result, err := h.service.Evaluate(domainReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "guardrail evaluation failed",
			"request_id", requestID,
			"client_ip", requestcontext.ClientIP(ctx),
			"error", err,
		)
		h.metrics.IncrementEvaluation("precondition_failed")
		var de *guardrails.DerivationError
		if errors.As(err, &de) {
			h.metrics.IncrementDerivationFailure(de.Parameter)
		}
		httputil.WriteError(w, translateDerivationError(err))
		return
	}

	h.logger.InfoContext(ctx, "guardrails evaluated",
		"request_id", requestID,
		"has_device_lists", domainReq.SupportedBasalRates != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	h.metrics.IncrementEvaluation("ok")
	h.metrics.ObserveEvaluateLatency(time.Since(start))

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleDefaults handles GET /guardrails/defaults requests.
func (h *Handler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, DefaultsResponse{
		SuspendThreshold:   guardrailPayload(guardrails.SuspendThreshold()),
		CorrectionRange:    guardrailPayload(guardrails.CorrectionRange()),
		InsulinSensitivity: guardrailPayload(guardrails.InsulinSensitivity()),
		CarbRatio:          guardrailPayload(guardrails.CarbRatio()),
	})
}

// translateDerivationError maps core sentinel errors onto transport codes.
// Empty device lists and unreachable snap targets are caller preconditions
// (422); a bounds-order violation is a logic bug and stays internal.
func translateDerivationError(err error) error {
	switch {
	case errors.Is(err, guardrails.ErrEmptyInput), errors.Is(err, guardrails.ErrNoSupportedValue):
		return derrors.Wrap(derrors.CodeUnprocessable, err.Error(), err)
	default:
		return derrors.Wrap(derrors.CodeInternal, "guardrail derivation failed", err)
	}
}
