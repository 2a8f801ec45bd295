// Package main runs the library lending service: the Lending Engine over an in-memory catalog,
// served as a REST API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-lending-go/catalog"
	"github.com/AntonStoeckl/library-lending-go/fine"
	"github.com/AntonStoeckl/library-lending-go/httpapi"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := run(os.Args[1:], os.Getenv); err != nil {
		slog.Error("libraryd failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string) error {
	cfg, err := loadConfig(args, getenv)
	if err != nil {
		return err
	}

	level, _ := cfg.slogLevel()
	stdoutHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(stdoutHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := setupObservability(ctx, cfg, stdoutHandler)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := obs.shutdown(shutdownCtx); err != nil {
			logger.Warn("observability shutdown failed", "error", err.Error())
		}
	}()

	engine, closeJournal, err := buildEngine(ctx, cfg, logger, obs)
	if err != nil {
		return err
	}
	defer closeJournal()

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, engine, time.Now()); err != nil {
			return err
		}

		logger.Info("demo data seeded")
	}

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	routerConfig := httpapi.RouterConfig{
		Handler:        httpapi.NewHandler(engine, time.Now),
		AllowedOrigins: cfg.CORSOrigins,
	}

	if cfg.ObservabilityEnabled {
		routerConfig.ServiceName = serviceName
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewRouter(routerConfig),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "journal", cfg.Journal.Driver, "observability", cfg.ObservabilityEnabled)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func buildEngine(ctx context.Context, cfg Config, logger *slog.Logger, obs observability) (*lending.Engine, func(), error) {
	policy, err := fine.NewPolicy(cfg.FineRatePerDay)
	if err != nil {
		return nil, nil, err
	}

	storeOptions := []catalog.Option{catalog.WithFinePolicy(policy), catalog.WithLogger(logger)}
	engineOptions := []lending.Option{lending.WithLogger(logger)}

	if obs.contextualLogger != nil {
		storeOptions = append(storeOptions, catalog.WithContextualLogger(obs.contextualLogger))
		engineOptions = append(engineOptions, lending.WithContextualLogger(obs.contextualLogger))
	}

	if obs.metricsCollector != nil {
		storeOptions = append(storeOptions, catalog.WithMetrics(obs.metricsCollector))
		engineOptions = append(engineOptions, lending.WithMetrics(obs.metricsCollector))
	}

	if obs.tracingCollector != nil {
		storeOptions = append(storeOptions, catalog.WithTracing(obs.tracingCollector))
		engineOptions = append(engineOptions, lending.WithTracing(obs.tracingCollector))
	}

	store, err := catalog.NewStore(storeOptions...)
	if err != nil {
		return nil, nil, err
	}

	j, closeJournal, err := openJournal(ctx, cfg.Journal, logger)
	if err != nil {
		return nil, nil, err
	}

	if j != nil {
		engineOptions = append(engineOptions, lending.WithJournal(j))
	}

	engine, err := lending.NewEngine(store, engineOptions...)
	if err != nil {
		closeJournal()
		return nil, nil, err
	}

	return engine, closeJournal, nil
}
