package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/picplay/geodaily/internal/config"
	"github.com/picplay/geodaily/internal/database"
	"github.com/picplay/geodaily/internal/geo"
	"github.com/picplay/geodaily/internal/geodaily"
	"github.com/picplay/geodaily/internal/imageday"
	"github.com/picplay/geodaily/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	checks := map[string]server.Checker{}

	// --- Snapshot store ---
	var store geodaily.Store
	switch cfg.StoreBackend {
	case "sqlite":
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		store, err = geodaily.NewSQLiteStore(ctx, db)
		if err != nil {
			return fmt.Errorf("initializing sqlite store: %w", err)
		}
		checks["sqlite"] = dbChecker{db}
		logger.Info("using sqlite store", "path", cfg.DBPath)
	case "file":
		store = geodaily.NewFileStore(cfg.StorePath)
		logger.Info("using file store", "path", cfg.StorePath)
	case "memory":
		store = geodaily.NewMemStore()
		logger.Warn("using in-memory store, state is lost on restart")
	default:
		return fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	// --- Image-of-the-day cache ---
	var cache imageday.Cache
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		cache = imageday.NewRedisCache(rdb)
		checks["redis"] = redisChecker{rdb}
		logger.Info("using redis image cache")
	} else {
		cache = imageday.NewMemCache()
	}

	images := imageday.NewCachedProvider(
		imageday.NewBingClient(cfg.ImageAPIURL, cfg.ImageMarket),
		cache,
	)
	resolver := geo.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent)
	game := geodaily.NewService(store, resolver, images)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Game:              game,
		Sessions:          server.NewSessions(),
		Checks:            checks,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// dbChecker adapts *sql.DB to server.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// redisChecker adapts *redis.Client to server.Checker.
type redisChecker struct{ client *redis.Client }

func (r redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
