package cakeservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/cakeshelf/cakeshelf/internal/api"
	"github.com/cakeshelf/cakeshelf/internal/config"
	"github.com/cakeshelf/cakeshelf/internal/factory"
	"github.com/cakeshelf/cakeshelf/internal/health"
	"github.com/cakeshelf/cakeshelf/internal/logger"
	"github.com/cakeshelf/cakeshelf/internal/services"
	"github.com/cakeshelf/cakeshelf/internal/store"
)

// Run starts the cakeshelf HTTP server and blocks until shutdown or error.
func Run(cfg *config.Config) error {
	log := logger.New("cakeshelf")

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Cakeshelf service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, closeStore, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() { _ = closeStore() }()

	svcHealth := startHealthCheckers(ctx, cfg, log, st)

	router := buildRouter(st, svcHealth, log, cfg)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, svcHealth *health.ServiceHealthChecker, log zerolog.Logger, cfg *config.Config) http.Handler {
	cakeSvc := services.NewCakeService(st)
	cakeHandler := api.NewCakeHandler(cakeSvc, log)
	healthHandler := api.NewHealthHandler(svcHealth.IsHealthy)
	return api.NewRouter(cakeHandler, healthHandler, log, cfg.CORSAllowedOrigins)
}

// startHealthCheckers starts the store checker and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
