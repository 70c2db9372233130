package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/chartflow/portal/internal/api"
	"github.com/chartflow/portal/internal/api/metrics"
	"github.com/chartflow/portal/internal/core/service"
	"github.com/chartflow/portal/internal/infrastructure/config"
	mongodb "github.com/chartflow/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/chartflow/portal/internal/infrastructure/db/redis"
	"github.com/chartflow/portal/internal/infrastructure/gateway"
	"github.com/chartflow/portal/internal/infrastructure/queue"
	"github.com/chartflow/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        ChartFlow Portal API
// @version      1.0
// @description  Backend for the ChartFlow analytics portal: auth modal, session and dashboard pages.
// @BasePath     /

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet; fall back to defaults.
		logger.Init(logger.Options{Pretty: true, Service: "chartflow-portal"})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "chartflow-portal",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting chartflow portal")

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     "chartflow-portal",
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongodb.Disconnect(mongoClient, shutdownTimeout); err != nil {
			log.Warn().Err(err).Msg("closing mongo")
		}
	}()
	if err := mongodb.NewSettingsRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// Session changes keep flowing while in-flight requests drain.
	dispatchCtx, stopDispatch := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDispatch()
	dispatcher := queue.NewDispatcher(cfg.Dispatch.Workers, logger.Named("dispatcher"))
	dispatcher.Start(dispatchCtx)

	factory, err := gateway.NewFactory(gateway.Options{
		Driver:    cfg.Auth.Driver,
		URL:       cfg.Auth.URL,
		AnonKey:   cfg.Auth.AnonKey,
		JWTSecret: cfg.Auth.JWTSecret,
		Timeout:   cfg.Auth.Timeout,
		RateLimit: cfg.Auth.RateLimit,
		RateBurst: cfg.Auth.RateBurst,
	}, gateway.Deps{
		Store:     redisdb.NewSessionStore(rdb, cfg.Auth.StoreTTL),
		Publisher: dispatcher,
	}, log)
	if err != nil {
		return err
	}

	registry := service.NewClientRegistry(factory, service.RegistryConfig{
		IdleTTL:       cfg.Session.IdleTTL,
		SweepInterval: cfg.Session.SweepEvery,
		OnSizeChange:  func(n int) { metrics.ActiveClients.Set(float64(n)) },
	}, logger.Named("clients"))

	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET not set; client cookies will not survive a restart")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, registry, db, rdb, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Str("gateway", factory.Name()).Msg("server listening")

	if err := serve(ctx, srv, ln, registry, log); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

type clientJanitor interface {
	Run(ctx context.Context) error
}

// serve runs the HTTP server and the client janitor until ctx is cancelled.
// Clients are closed only once in-flight requests have drained.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, clients clientJanitor, log zerolog.Logger) error {
	clientsCtx, stopClients := context.WithCancel(context.WithoutCancel(ctx))
	defer stopClients()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return clients.Run(clientsCtx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)
		stopClients()
		return err
	})

	return g.Wait()
}
