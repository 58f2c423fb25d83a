package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/pricing"
	"github.com/kirinyoku/wedgo/internal/repository"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
	"github.com/kirinyoku/wedgo/internal/uow"
)

const maxTxAttempts = 3

// CreateRequest is a booking draft as submitted by a requester. Pricing is the
// requester's snapshot and is only compared against the server's figure.
type CreateRequest struct {
	VendorID    int64
	VenueID     *int64
	RequesterID int64
	Items       []domain.SelectedService
	SlotID      int64
	Date        time.Time
	Pricing     *domain.Pricing
	Notes       string
}

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisrepo.AvailabilityPubSub
	limiter *redisrepo.BookingLimiter
	uow     *uow.UoW
	logger  *slog.Logger
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.AvailabilityPubSub,
	limiter *redisrepo.BookingLimiter,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		logger:  logger,
	}
}

// Create books one unit of a time slot for the requested services.
//
// Parameters:
//   - ctx: request-scoped context.
//   - req: the submitted draft.
//   - rlKey: rate limit bucket, usually the client IP; empty disables limiting.
//
// Returns:
//   - *domain.Booking: the pending booking with server-side pricing.
//   - error: *booking.ValidationError if the request is malformed.
//   - error: *booking.RateLimitedError if the caller is over its limit.
//   - error: booking.ErrSlotUnavailable if the slot is missing, disabled or full.
func (s *Service) Create(ctx context.Context, req CreateRequest, rlKey string) (*domain.Booking, error) {
	const op = "service.booking.Create"

	if s.limiter != nil && rlKey != "" {
		d, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !d.Allowed {
			return nil, fmt.Errorf("%s:%w", op, &RateLimitedError{RetryAfter: d.RetryAfter})
		}
	}

	if err := checkRequest(req); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	ids := make([]int64, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ServiceID)
	}

	services, err := s.store.Catalog().ServicesByIDs(ctx, req.VendorID, ids)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	catalog := pricing.Index(services)
	if err := checkItems(req.Items, catalog); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	items, err := pricing.Items(req.Items, catalog)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	price := pricing.FromItems(items)

	if req.Pricing != nil && *req.Pricing != price {
		s.logger.Warn("client pricing differs from server pricing",
			slog.Int64("vendor_id", req.VendorID),
			slog.Int64("client_final_cents", req.Pricing.FinalCents),
			slog.Int64("server_final_cents", price.FinalCents),
		)
	}

	b := &domain.Booking{
		ID:          uuid.New(),
		VendorID:    req.VendorID,
		VenueID:     req.VenueID,
		RequesterID: req.RequesterID,
		Items:       items,
		Pricing:     price,
		Status:      domain.BookingPending,
		Notes:       req.Notes,
	}

	reserve := func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		slot, err := s.store.Bookings().With(tx).ReserveSlot(ctx, req.SlotID, req.VendorID, req.VenueID)
		if err != nil {
			if errors.Is(err, repository.ErrSlotUnavailable) {
				return ErrSlotUnavailable
			}
			return err
		}

		if !domain.SameDay(slot.Date, req.Date) {
			return invalid(ErrScheduleMismatch, "slot %d is on %s", slot.ID, slot.Date.Format(domain.DateLayout))
		}

		b.Schedule, err = domain.ScheduleFromSlot(slot)
		if err != nil {
			return err
		}

		if err := s.store.Bookings().With(tx).Insert(ctx, b); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.availabilityChanged(ctx, req.VendorID, req.SlotID)
		})

		return nil
	}

	// Transactions racing for the same slot abort with a serialization failure.
	err = s.uow.DoRetry(ctx, maxTxAttempts, reserve)
	if errors.Is(err, uow.ErrTooManyRetries) {
		err = ErrSlotUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.logger.Info("booking created",
		slog.String("booking_id", b.ID.String()),
		slog.Int64("vendor_id", b.VendorID),
		slog.Int64("slot_id", b.Schedule.SlotID),
		slog.Int64("final_cents", b.Pricing.FinalCents),
	)

	return b, nil
}

// Get retrieves a booking by its ID.
//
// Returns:
//   - error: booking.ErrBookingNotFound if the booking is not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "service.booking.Get"

	b, err := s.store.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return b, nil
}

// Cancel cancels a booking and gives its slot unit back.
//
// Returns:
//   - error: booking.ErrBookingNotFound if the booking is not found.
//   - error: booking.ErrAlreadyCancelled if it was cancelled before.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "service.booking.Cancel"

	var out *domain.Booking

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.store.Bookings().With(tx)

		b, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if b.Status == domain.BookingCancelled {
			return ErrAlreadyCancelled
		}

		if err := repo.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
			return err
		}

		if err := repo.ReleaseSlot(ctx, b.Schedule.SlotID); err != nil {
			return err
		}

		b.Status = domain.BookingCancelled
		out = b

		after(func(ctx context.Context) {
			s.availabilityChanged(ctx, b.VendorID, b.Schedule.SlotID)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Confirm moves a pending booking to confirmed. paymentRef, when set, replaces
// the payment reference stored on the booking; one of the two must exist.
//
// Returns:
//   - error: booking.ErrBookingNotFound if the booking is not found.
//   - error: booking.ErrNotPending if the booking is not pending.
//   - error: booking.ErrPaymentMissing if no payment is attached.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, paymentRef string) (*domain.Booking, error) {
	const op = "service.booking.Confirm"

	var out *domain.Booking

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		repo := s.store.Bookings().With(tx)

		b, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if b.Status != domain.BookingPending {
			return ErrNotPending
		}

		if paymentRef != "" {
			if err := repo.SetPaymentIntent(ctx, id, paymentRef); err != nil {
				return err
			}
			b.PaymentIntentID = paymentRef
		}

		if b.PaymentIntentID == "" {
			return ErrPaymentMissing
		}

		if err := repo.UpdateStatus(ctx, id, domain.BookingConfirmed); err != nil {
			return err
		}

		b.Status = domain.BookingConfirmed
		out = b

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
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
