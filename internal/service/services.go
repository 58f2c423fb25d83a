package service

import (
	"log/slog"

	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
	"github.com/kirinyoku/wedgo/internal/service/admin"
	"github.com/kirinyoku/wedgo/internal/service/booking"
	"github.com/kirinyoku/wedgo/internal/service/campaigns"
	"github.com/kirinyoku/wedgo/internal/service/catalog"
	"github.com/kirinyoku/wedgo/internal/service/payments"
)

type Services struct {
	Catalog   *catalog.Service
	Booking   *booking.Service
	Admin     *admin.Service
	Campaigns *campaigns.Service
	// Payments is nil when no payment provider is configured.
	Payments *payments.Service
}

type Config struct {
	Catalog catalog.Config
}

func NewServices(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	limiter *redisrepo.BookingLimiter,
	intents payments.IntentCreator,
	logger *slog.Logger,
	cfg Config,
) *Services {
	svcs := &Services{
		Catalog:   catalog.New(store, cache, cfg.Catalog),
		Booking:   booking.New(store, cache, pubsub, limiter, logger),
		Admin:     admin.New(store, cache, pubsub, logger),
		Campaigns: campaigns.New(store),
	}

	if intents != nil {
		svcs.Payments = payments.New(store, intents, logger)
	}

	return svcs
}
