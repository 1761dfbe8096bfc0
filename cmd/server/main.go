package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dock-allocation-service/internal/api"
	"dock-allocation-service/internal/app"
	"dock-allocation-service/internal/config"
	"dock-allocation-service/internal/platform/obs"

	"github.com/prometheus/client_golang/prometheus"
)

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load(config.Get("DOCK_CONFIG", ""))
	if err != nil {
		obs.NewLogger("server", "info", "").Fatal().Err(err).Msg("load config")
	}

	logger := obs.NewLogger("server", cfg.Log.Level, cfg.Log.Format)
	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := app.New(ctx, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal().Err(err).Msg("wire application")
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error().Err(err).Msg("close application")
		}
	}()

	router := api.NewRouter(api.Deps{
		Runner:   svc.Allocator,
		Reports:  svc.Reports,
		Defaults: svc.Defaults,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   logger,
	})

	// Write timeout covers cold-cache ORS lookups plus a full escalation run.
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server stopped")
	}
}
