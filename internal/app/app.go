package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/wedgo/internal/config"
	"github.com/kirinyoku/wedgo/internal/postgres"
	"github.com/kirinyoku/wedgo/internal/redis"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
	"github.com/kirinyoku/wedgo/internal/service"
	"github.com/kirinyoku/wedgo/internal/service/catalog"
	"github.com/kirinyoku/wedgo/internal/service/payments"
	httpgin "github.com/kirinyoku/wedgo/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *goredis.Client
	cache      *redisrepo.Cache
	pubsub     *redisrepo.AvailabilityPubSub
	httpServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	// Initialize dependencies
	pgxPool, err := postgres.New(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN(),
		MaxConns: cfg.Postgres.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: initialize postgres: %w", op, err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pgxPool); err != nil {
			pgxPool.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("schema applied")
	}

	rdb, err := redis.New(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("%s: initialize redis: %w", op, err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewAvailabilityPubSub(rdb)
	limiter := redisrepo.NewBookingLimiter(rdb, cfg.RateLimit.BookingsPerMinute, time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, time.Minute, 24*time.Hour)

	var intents payments.IntentCreator
	if cfg.Stripe.SecretKey != "" {
		intents = payments.NewStripeIntents(cfg.Stripe.SecretKey)
	} else {
		logger.Info("no STRIPE_SECRET_KEY set, checkout disabled")
	}

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, intents, logger, service.Config{
		Catalog: catalog.Config{},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(transportServices(services), idempotencyStore, logger, cfg.Server.CORSOrigins)

	return &App{
		cfg:    cfg,
		logger: logger,
		pool:   pgxPool,
		rdb:    rdb,
		cache:  cache,
		pubsub: pubsub,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// transportServices narrows the concrete services to the handler interfaces.
// Payments stays a nil interface when checkout is disabled.
func transportServices(s *service.Services) httpgin.Services {
	out := httpgin.Services{
		Catalog:   s.Catalog,
		Booking:   s.Booking,
		Campaigns: s.Campaigns,
		Admin:     s.Admin,
	}
	if s.Payments != nil {
		out.Payments = s.Payments
	}
	return out
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.pool.Close()
	defer a.rdb.Close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drop the shared availability cache again on every change event. A load that
	// overlapped the publisher's own invalidation may have refilled it with old slots.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, nil, func(ctx context.Context, vendorID int64) {
			if err := a.cache.InvalidateAvailability(ctx, vendorID); err != nil {
				a.logger.Warn("availability invalidation failed", "vendor_id", vendorID, "error", err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("availability subscriber: %w", err)
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
