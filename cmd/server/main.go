package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"validarfc/internal/health"
	httpapi "validarfc/internal/http"
	"validarfc/internal/platform/config"
	"validarfc/internal/platform/httpserver"
	"validarfc/internal/platform/logger"
	"validarfc/internal/platform/metrics"
	"validarfc/internal/rfc"
	"validarfc/internal/validation"
	validationhandler "validarfc/internal/validation/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. The pattern is compiled before the listener opens.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	pattern, err := rfc.Default()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := validation.New(pattern,
		validation.WithMetrics(m),
		validation.WithWorkers(cfg.Bulk.Workers),
	)
	router := httpapi.NewRouter(cfg, log, m,
		health.New(),
		validationhandler.New(svc, log,
			validationhandler.WithMaxBodyBytes(cfg.MaxBodyBytes),
			validationhandler.WithBulkLimits(cfg.Bulk.MaxRows, cfg.Bulk.MaxBytes),
		),
	)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting validarfc", "addr", ln.Addr().String(), "pattern", pattern.String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
