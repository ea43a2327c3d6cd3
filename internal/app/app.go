package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mexxdev/qrdirect/internal/adapter/chooser"
	"github.com/mexxdev/qrdirect/internal/adapter/postgres"
	"github.com/mexxdev/qrdirect/internal/adapter/postgres/record"
	"github.com/mexxdev/qrdirect/internal/adapter/postgres/scanevent"
	"github.com/mexxdev/qrdirect/internal/adapter/probe"
	"github.com/mexxdev/qrdirect/internal/config"
	"github.com/mexxdev/qrdirect/internal/service/resolve"
	"github.com/mexxdev/qrdirect/internal/service/scanlog"
	"github.com/mexxdev/qrdirect/internal/transport/middleware"
	"github.com/mexxdev/qrdirect/internal/transport/rest"
)

// Run wires the whole service together and blocks until ctx is cancelled:
// config, logger, database pool, adapters, the resolution service, and the
// HTTP server. Shutdown drains in-flight requests first and queued scan
// events second, both bounded by the configured shutdown timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting qrdirect",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	records := record.New(pool)
	events := scanevent.New(pool)

	recorder := scanlog.NewRecorder(logger, events, cfg.Resolver.ScanQueueSize)

	prober := probe.NewProber(cfg.Resolver.ProbeTimeout, logger)

	var fallbackChooser *chooser.Chooser
	if cfg.Fallback.Enabled {
		fallbackChooser = chooser.New(cfg.Fallback.APIKey, cfg.Fallback.Model, cfg.Fallback.MaxTokens, logger)
		logger.Info("fallback selection enabled", slog.String("model", cfg.Fallback.Model))
	}

	svc := newResolveService(logger, records, recorder, prober, fallbackChooser, cfg.Resolver)

	resolveHandler := rest.NewResolveHandler(logger, svc, cfg.Resolver.PinPagePath, cfg.Resolver.ErrorPagePath)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	mux := rest.NewRouter(resolveHandler, healthHandler)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		mws = append(mws, limiter.Limit(cfg.RateLimit.PerMinute))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}

	// Flush scan events queued by requests that already got their redirect.
	if err := recorder.Close(shutdownCtx); err != nil {
		logger.Error("scan recorder drain", slog.String("error", err.Error()))
	}

	logger.Info("shutdown complete")
	return nil
}

// newResolveService keeps the nil-interface subtlety in one place: passing a
// typed nil *chooser.Chooser through an interface would defeat the service's
// nil check.
func newResolveService(
	logger *slog.Logger,
	records *record.Repo,
	recorder *scanlog.Recorder,
	prober *probe.Prober,
	fallbackChooser *chooser.Chooser,
	cfg config.ResolverConfig,
) *resolve.Service {
	svcCfg := resolve.Config{
		ProbeTimeout:    cfg.ProbeTimeout,
		SelectorTimeout: cfg.SelectorTimeout,
		PinFeedback:     cfg.PinFeedback,
		WrongPinMessage: cfg.WrongPinMessage,
	}
	if fallbackChooser == nil {
		return resolve.NewService(logger, records, recorder, prober, nil, svcCfg)
	}
	return resolve.NewService(logger, records, recorder, prober, fallbackChooser, svcCfg)
}
