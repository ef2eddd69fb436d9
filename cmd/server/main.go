package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"doseguard/internal/guardrails"
	guardrailhandler "doseguard/internal/guardrails/handler"
	"doseguard/internal/guardrails/metrics"
	"doseguard/internal/platform/config"
	"doseguard/internal/platform/httpserver"
	"doseguard/internal/platform/logger"
	httptransport "doseguard/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Derivation logic lives in internal/guardrails.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	service := guardrails.NewService()
	handler := guardrailhandler.New(service, log, metrics.New(), cfg.SnapPrecision)
	router := httptransport.NewRouter(handler)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting doseguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
