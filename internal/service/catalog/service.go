package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/wedgo/internal/availability"
	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/repository"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
)

type Config struct {
	CatalogTTL      time.Duration
	AvailabilityTTL time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
	now   func() time.Time
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.CatalogTTL <= 0 {
		cfg.CatalogTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
		now:   time.Now,
	}
}

// GetVendor retrieves a vendor by its ID through the cache.
//
// Returns:
//   - error: catalog.ErrVendorNotFound if the vendor is not found.
func (s *Service) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	const op = "service.catalog.GetVendor"

	v, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyVendor(id), s.cfg.CatalogTTL,
		func(ctx context.Context) (domain.Vendor, error) {
			v, err := s.store.Catalog().GetVendor(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Vendor{}, ErrVendorNotFound
				}
				return domain.Vendor{}, err
			}
			return *v, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &v, nil
}

// GetVenue retrieves a venue by its ID through the cache.
//
// Returns:
//   - error: catalog.ErrVenueNotFound if the venue is not found.
func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "service.catalog.GetVenue"

	v, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyVenue(id), s.cfg.CatalogTTL,
		func(ctx context.Context) (domain.Venue, error) {
			v, err := s.store.Catalog().GetVenue(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Venue{}, ErrVenueNotFound
				}
				return domain.Venue{}, err
			}
			return *v, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &v, nil
}

// ListServices lists the services a vendor offers. An unknown vendor has none.
func (s *Service) ListServices(ctx context.Context, vendorID int64) ([]domain.Service, error) {
	const op = "service.catalog.ListServices"

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyVendorServices(vendorID), s.cfg.CatalogTTL,
		func(ctx context.Context) ([]domain.Service, error) {
			return s.store.Catalog().ListServices(ctx, vendorID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Availability returns the vendor's upcoming slots grouped by day. A nil venueID
// covers every venue; a non-nil date narrows the result to that day.
//
// Parameters:
//   - vendorID: vendor whose slots are listed.
//   - venueID: optional venue filter.
//   - date: optional calendar day filter.
//
// Returns:
//   - []domain.Availability: one record per day, never nil.
func (s *Service) Availability(
	ctx context.Context,
	vendorID int64,
	venueID *int64,
	date *time.Time,
) ([]domain.Availability, error) {
	const op = "service.catalog.Availability"

	key := redisrepo.KeyAvailabilityAllVenues(vendorID)
	if venueID != nil {
		key = redisrepo.KeyAvailability(vendorID, *venueID)
	}

	records, err := redisrepo.GetOrSetJSON(ctx, s.cache, key, s.cfg.AvailabilityTTL,
		func(ctx context.Context) ([]domain.Availability, error) {
			slots, err := s.store.Catalog().ListSlots(ctx, vendorID, venueID, domain.Day(s.now()))
			if err != nil {
				return nil, err
			}
			return availability.Group(slots), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if date == nil {
		return records, nil
	}

	out := []domain.Availability{}
	for _, rec := range records {
		if domain.SameDay(rec.Date, *date) {
			out = append(out, rec)
		}
	}

	return out, nil
}
