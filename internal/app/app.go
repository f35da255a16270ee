// Package app wires the service together and runs it until the context is
// canceled.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/linksnip/linksnip/internal/config"
	"github.com/linksnip/linksnip/internal/usecase"
	"github.com/linksnip/linksnip/pkg/postgres"
	"github.com/linksnip/linksnip/pkg/redis"
	"golang.org/x/sync/errgroup"

	delivery "github.com/linksnip/linksnip/internal/adapter/delivery/http"
	postgresRepo "github.com/linksnip/linksnip/internal/adapter/repository/postgres"
	redisRepo "github.com/linksnip/linksnip/internal/adapter/repository/redis"
)

// Run builds the full dependency graph from cfg and serves until ctx is done.
// The HTTP server, the stat recorder and the cleanup sweeper run in one
// errgroup, so a fatal error in any of them tears down the others.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger := setupLogger(cfg.Env)

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	rdb, err := redis.New(
		ctx,
		cfg.Redis.Addr(),
		redis.WithPassword(cfg.Redis.Password),
		redis.WithDB(cfg.Redis.DB),
		redis.WithDialTimeout(cfg.Redis.DialTimeout),
		redis.WithReadTimeout(cfg.Redis.ReadTimeout),
		redis.WithWriteTimeout(cfg.Redis.WriteTimeout),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}
	defer rdb.Close()

	linkRepo := postgresRepo.NewLinkRepository(db)
	linkCache := redisRepo.NewLinkCache(rdb, redisRepo.WithTTL(cfg.Cache.DefaultTTL))
	limiter := redisRepo.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	statRecorder := usecase.NewStatRecorder(linkRepo, linkCache, logger.Logger, cfg.Cache.StatQueueSize)
	linkUseCase := usecase.NewLinkUseCase(
		linkRepo,
		linkCache,
		statRecorder,
		logger.Logger,
		cfg.ShortCode.Length,
		cfg.ShortCode.MaxRetries,
	)
	sweeper := usecase.NewSweeper(
		linkRepo,
		linkCache,
		logger.Logger,
		cfg.Sweeper.Interval,
		cfg.Sweeper.Retention,
		cfg.Sweeper.GracePeriod,
		cfg.Sweeper.PassTimeout,
	)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        delivery.NewRouter(logger, linkUseCase, identityVerifier{}, limiter),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return statRecorder.Run(ctx)
	})

	g.Go(func() error {
		return sweeper.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("server started", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}

func setupLogger(env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel:       slog.LevelDebug,
		Concise:        true,
		RequestHeaders: true,
	}

	switch env {
	case config.EnvStage:
		opts.JSON = true
		opts.LogLevel = slog.LevelInfo
	case config.EnvProd:
		opts.JSON = true
		opts.LogLevel = slog.LevelWarn
	}

	return httplog.NewLogger("linksnip", opts)
}

// identityVerifier accepts any non-empty bearer token and uses it as the
// principal ID. It stands in for a real token service outside prod.
type identityVerifier struct{}

func (identityVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.New("empty token")
	}

	return token, nil
}
