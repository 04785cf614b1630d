// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timdeluxe/subiquity/internal/config"
	"github.com/timdeluxe/subiquity/internal/domain/ports/adapter"
	"github.com/timdeluxe/subiquity/internal/infra/adapters/pro"
	"github.com/timdeluxe/subiquity/internal/infra/api"
	apiv1 "github.com/timdeluxe/subiquity/internal/infra/api/apiv1"
	"github.com/timdeluxe/subiquity/internal/infra/logging"
	"github.com/timdeluxe/subiquity/internal/infra/metrics"
	"github.com/timdeluxe/subiquity/internal/infra/sched"
	"github.com/timdeluxe/subiquity/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, unredacted tokens)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Query strategy ----
	var strategy adapter.StatusQueryStrategy
	switch cfg.Strategy.Mode {
	case "uaclient":
		strategy = pro.NewUAClientStrategy(cfg.Strategy.Executable, logger)
		logger.Info().Strs("executable", cfg.Strategy.Executable).Msg("strategy: ua client")
	default:
		strategy = pro.NewMockStrategy(cfg.Strategy.ScaleFactor, logger)
		logger.Info().Int("scale_factor", cfg.Strategy.ScaleFactor).Msg("strategy: mock")
	}

	subUC := usecase.NewSubscriptionUseCase(strategy, logger)

	// ---- HTTP server ----
	r := chi.NewRouter()
	r.Use(api.TraceID())
	r.Use(api.RequestLog(logger))
	r.Use(api.Recover(logger))
	r.Use(api.Timeout(30 * time.Second))
	r.Handle("/metrics", promhttp.Handler())

	srv := apiv1.NewServer(subUC, cfg.Server.APIKey, logger)
	srv.Register(r)

	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: r}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Status poller (optional) ----
	if cfg.Monitor.Token != "" {
		poller := sched.NewStatusPoller(cfg.Monitor.Interval, cfg.Monitor.Token, subUC, cfg.Runtime.Dev, logger)
		go func() { _ = poller.Run(ctx) }()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}
