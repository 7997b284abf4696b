package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"crsc/internal/platform/config"
	"crsc/internal/platform/health"
	"crsc/internal/platform/httpserver"
	"crsc/internal/platform/logger"
	"crsc/internal/platform/metrics"
	"crsc/internal/platform/tracer"
	"crsc/internal/statuscheck"
	httptransport "crsc/internal/transport/http"
)

// main wires the status service behind the public API listener and serves
// metrics and probes on the ops listener until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing crsc status mock",
		"addr", cfg.Addr,
		"ops_addr", cfg.OpsAddr,
		"environment", cfg.Environment,
	)

	m := metrics.New(prometheus.DefaultRegisterer)
	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("statuscheck", func(context.Context) error {
		return statuscheck.SelfCheck(time.Now())
	})

	svc := statuscheck.New(
		statuscheck.WithLogger(log),
		statuscheck.WithMetrics(m),
		statuscheck.WithTracer(tracer.NewOTel(nil)),
	)

	api := httpserver.New(cfg.Addr, httptransport.NewRouter(svc, httptransport.Options{
		Logger:         log,
		Metrics:        m,
		Health:         healthHandler,
		RequestTimeout: cfg.RequestTimeout,
	}))
	ops := httpserver.New(cfg.OpsAddr, httptransport.NewOpsRouter(prometheus.DefaultGatherer, healthHandler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{api, ops} {
		g.Go(func() error {
			log.Info("starting http server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down servers gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), ops.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
