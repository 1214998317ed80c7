package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/cartoptions-backend/api/routes"
	"github.com/angelmondragon/cartoptions-backend/pkg/config"
	"github.com/angelmondragon/cartoptions-backend/pkg/db"
	"github.com/angelmondragon/cartoptions-backend/pkg/env"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
	"github.com/angelmondragon/cartoptions-backend/pkg/migrate"
	"github.com/angelmondragon/cartoptions-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis disabled: idempotency and catalog cache are off")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cartService, err := newCartService(cfg, dbClient, redisClient, registry, logg)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		closeResources(ctx, logg, dbClient, redisClient)
		os.Exit(1)
	}

	port := env.FirstOf(cfg.App.Port, "PORT")
	addr := ":" + port
	srvCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(srvCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Deps{
			DB:          dbClient,
			Redis:       redisClient,
			Gatherer:    registry,
			CartService: cartService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(srvCtx, "api server stopped unexpectedly", err)
			closeResources(srvCtx, logg, dbClient, redisClient)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(srvCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(srvCtx, "graceful shutdown failed", err)
		}
	}

	closeResources(srvCtx, logg, dbClient, redisClient)
}

func closeResources(ctx context.Context, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) {
	err := dbClient.Close()
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	if err != nil {
		logg.Error(ctx, "error closing resources", err)
	}
}
