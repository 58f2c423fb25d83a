package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/repository"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
	"github.com/kirinyoku/wedgo/internal/uow"
)

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.AvailabilityPubSub
	uow    *uow.UoW
	logger *slog.Logger
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
		logger: logger,
	}
}

// CreateVendor creates a vendor record and returns its ID.
//
// Returns:
//   - error: admin.ErrVendorConflict if a vendor with the same name exists.
func (s *Service) CreateVendor(ctx context.Context, v domain.Vendor) (int64, error) {
	const op = "service.admin.CreateVendor"

	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return 0, fmt.Errorf("%s: %w: name is required", op, ErrInvalidInput)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Admin().With(tx).CreateVendor(ctx, v)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrVendorConflict)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// CreateVenue creates a venue owned by a vendor.
//
// Returns:
//   - error: admin.ErrVendorNotFound if the vendor does not exist.
//   - error: admin.ErrVenueConflict if the vendor already has a venue with that name.
func (s *Service) CreateVenue(ctx context.Context, v domain.Venue) (int64, error) {
	const op = "service.admin.CreateVenue"

	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" || v.Capacity < 0 {
		return 0, fmt.Errorf("%s: %w: venue needs a name and a non-negative capacity", op, ErrInvalidInput)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Admin().With(tx).CreateVenue(ctx, v)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrConflict):
				return fmt.Errorf("%s: %w", op, ErrVenueConflict)
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s: %w", op, ErrVendorNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})

	return id, err
}

// CreateService adds a priced service to a vendor's catalog.
//
// Returns:
//   - error: admin.ErrInvalidInput if the price or customizations are malformed.
//   - error: admin.ErrVendorNotFound if the vendor does not exist.
func (s *Service) CreateService(ctx context.Context, svc domain.Service) (int64, error) {
	const op = "service.admin.CreateService"

	if err := checkService(&svc); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Admin().With(tx).CreateService(ctx, svc)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrVendorNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			if err := s.cache.InvalidateVendor(ctx, svc.VendorID); err != nil {
				s.logger.Warn("invalidate vendor", slog.Int64("vendor_id", svc.VendorID), slog.Any("err", err))
			}
		})
		return nil
	})

	return id, err
}

// BatchCreateSlots declares bookable slots for a vendor. Slots that already
// exist are skipped.
//
// Returns:
//   - int64: how many slots were inserted.
//   - error: admin.ErrSlotsConflict if every slot already existed.
func (s *Service) BatchCreateSlots(ctx context.Context, vendorID int64, slots []domain.TimeSlot) (int64, error) {
	const op = "service.admin.BatchCreateSlots"

	if len(slots) == 0 {
		return 0, fmt.Errorf("%s: %w: no slots", op, ErrInvalidInput)
	}

	prepared := make([]domain.TimeSlot, 0, len(slots))
	for i, sl := range slots {
		sl.VendorID = vendorID
		sl.Date = domain.Day(sl.Date)
		if sl.Capacity == 0 {
			sl.Capacity = 1
		}
		if err := checkSlot(&sl); err != nil {
			return 0, fmt.Errorf("%s: %w: slot %d: %w", op, ErrInvalidInput, i, err)
		}
		prepared = append(prepared, sl)
	}

	var inserted int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		inserted, err = s.store.Admin().With(tx).BatchCreateSlots(ctx, prepared)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrVendorNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}
		if inserted == 0 {
			return fmt.Errorf("%s: %w", op, ErrSlotsConflict)
		}

		after(func(ctx context.Context) {
			s.availabilityChanged(ctx, vendorID, 0)
		})
		return nil
	})

	return inserted, err
}

// SetSlotAvailability opens or closes a slot for booking.
//
// Returns:
//   - error: admin.ErrSlotNotFound if the slot does not exist.
func (s *Service) SetSlotAvailability(ctx context.Context, slotID int64, available bool) error {
	const op = "service.admin.SetSlotAvailability"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		vendorID, err := s.store.Admin().With(tx).SetSlotAvailability(ctx, slotID, available)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrSlotNotFound)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			s.availabilityChanged(ctx, vendorID, slotID)
		})
		return nil
	})
}

func (s *Service) availabilityChanged(ctx context.Context, vendorID, slotID int64) {
	if err := s.cache.InvalidateAvailability(ctx, vendorID); err != nil {
		s.logger.Warn("invalidate availability", slog.Int64("vendor_id", vendorID), slog.Any("err", err))
	}
	if s.pubsub != nil {
		if err := s.pubsub.PublishChanged(ctx, vendorID, slotID); err != nil {
			s.logger.Warn("publish availability change", slog.Int64("vendor_id", vendorID), slog.Any("err", err))
		}
	}
}
