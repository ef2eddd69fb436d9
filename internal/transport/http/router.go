// Package httptransport assembles the public router. Handlers delegate to
// domain services so transport concerns stay isolated here.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	guardrailhandler "doseguard/internal/guardrails/handler"
	"doseguard/pkg/platform/middleware/metadata"
	"doseguard/pkg/platform/middleware/requestid"
)

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(guardrails *guardrailhandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.RequestID)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	guardrails.Register(r)
	return r
}
