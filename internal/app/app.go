package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avein/ticketd/internal/config"
	"github.com/avein/ticketd/internal/postgres"
	redisx "github.com/avein/ticketd/internal/redis"
	postgresrepo "github.com/avein/ticketd/internal/repository/postgres"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
	"github.com/avein/ticketd/internal/service"
	httpgin "github.com/avein/ticketd/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// New wires the application. A missing or unreachable database is not fatal:
// the server still starts, data endpoints answer 503 and /test reports the
// connection state. Redis is optional the same way.
func New(cfg *config.Config, logger *slog.Logger) *App {
	var store *postgresrepo.Store
	diag := &httpgin.Diagnostics{DatabaseURLSet: cfg.DatabaseURL != ""}

	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, starting without a database")
	} else {
		pool, err := postgres.New(context.Background(), postgres.Config{DSN: cfg.DatabaseURL})
		if err != nil {
			logger.Warn("database unreachable, starting degraded", "error", err)
			diag.ConnectError = err.Error()
		} else {
			store = postgresrepo.NewStore(pool)
			diag.Store = store
		}
	}

	var (
		cache   *redisrepo.Cache
		pubsub  *redisx.CheckinPubSub
		limiter *redisrepo.SlidingWindowLimiter
		idem    *redisrepo.IdempotencyStore
	)

	if cfg.Redis.Addr != "" {
		rdb, err := redisx.New(context.Background(), redisx.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis unreachable, continuing without it", "error", err)
		} else {
			cache = redisrepo.New(rdb)
			pubsub = redisx.NewCheckinPubSub(rdb)
			limiter = redisrepo.NewSlidingWindowLimiter(rdb, "ticketd:v1:rl:checkin", 60, 1*time.Minute)
			idem = redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
		}
	}

	var svcs *service.Services
	if store != nil {
		svcs = service.NewServices(store, cache, pubsub, limiter, service.Config{})
	}

	router := httpgin.NewRouter(svcs, idem, diag, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
