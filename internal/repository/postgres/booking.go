package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/repository"
)

type BookingRepo struct {
	pool Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const bookingColumns = `id, vendor_id, venue_id, requester_id, slot_id, slot_date, start_time, end_time,
	duration_minutes, items, base_cents, tax_rate_bps, tax_cents, final_cents, currency,
	status, notes, payment_intent_id, created_at, updated_at`

// ReserveSlot takes one unit of capacity from a slot. The conditional update is
// what arbitrates between concurrent requesters: the first to commit wins.
//
// Parameters:
//   - slotID: slot to reserve.
//   - vendorID: the slot must belong to this vendor.
//   - venueID: when set, the slot must belong to this venue.
//
// Returns:
//   - domain.TimeSlot: the slot after the reservation.
//   - error: repository.ErrSlotUnavailable if the slot is missing, disabled or full.
func (r *BookingRepo) ReserveSlot(
	ctx context.Context,
	slotID, vendorID int64,
	venueID *int64,
) (domain.TimeSlot, error) {
	const op = "postgresrepo.BookingRepo.ReserveSlot"

	s, err := scanSlot(r.handle().QueryRow(ctx,
		`UPDATE time_slots
		 SET booked_count = booked_count + 1
		 WHERE id = $1
		   AND vendor_id = $2
		   AND ($3::bigint IS NULL OR venue_id = $3)
		   AND is_available
		   AND booked_count < capacity
		 RETURNING `+slotColumns,
		slotID, vendorID, venueID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TimeSlot{}, fmt.Errorf("%s:%w", op, repository.ErrSlotUnavailable)
		}
		return domain.TimeSlot{}, wrapDBErr(op, err)
	}

	return s, nil
}

// ReleaseSlot gives back one unit of capacity.
func (r *BookingRepo) ReleaseSlot(ctx context.Context, slotID int64) error {
	const op = "postgresrepo.BookingRepo.ReleaseSlot"

	if _, err := r.handle().Exec(ctx,
		`UPDATE time_slots
		 SET booked_count = GREATEST(booked_count - 1, 0)
		 WHERE id = $1`,
		slotID,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Insert stores a new booking. Items are kept as a JSON document.
func (r *BookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	const op = "postgresrepo.BookingRepo.Insert"

	items, err := json.Marshal(b.Items)
	if err != nil {
		return fmt.Errorf("%s: encode items: %w", op, err)
	}

	if err := r.handle().QueryRow(ctx,
		`INSERT INTO bookings(id, vendor_id, venue_id, requester_id, slot_id, slot_date, start_time, end_time,
			duration_minutes, items, base_cents, tax_rate_bps, tax_cents, final_cents, currency, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING created_at, updated_at`,
		b.ID,
		b.VendorID,
		b.VenueID,
		b.RequesterID,
		b.Schedule.SlotID,
		b.Schedule.Date,
		b.Schedule.StartTime,
		b.Schedule.EndTime,
		b.Schedule.DurationMinutes,
		items,
		b.Pricing.BaseCents,
		b.Pricing.TaxRateBasisPoints,
		b.Pricing.TaxCents,
		b.Pricing.FinalCents,
		b.Pricing.Currency,
		string(b.Status),
		b.Notes,
	).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Get retrieves a booking by its ID.
//
// Returns:
//   - error: repository.ErrNotFound if the booking is not found.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgresrepo.BookingRepo.Get"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// GetForUpdate is Get with a row lock; use it inside a transaction.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgresrepo.BookingRepo.GetForUpdate"

	b, err := scanBooking(r.handle().QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return b, nil
}

// UpdateStatus changes a booking's status.
//
// Returns:
//   - error: repository.ErrNotFound if the booking is not found.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	const op = "postgresrepo.BookingRepo.UpdateStatus"

	tag, err := r.handle().Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// SetPaymentIntent records the payment provider's intent for a booking.
func (r *BookingRepo) SetPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	const op = "postgresrepo.BookingRepo.SetPaymentIntent"

	tag, err := r.handle().Exec(ctx,
		`UPDATE bookings SET payment_intent_id = $2, updated_at = now() WHERE id = $1`,
		id, intentID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b      domain.Booking
		items  []byte
		status string
	)
	if err := row.Scan(
		&b.ID,
		&b.VendorID,
		&b.VenueID,
		&b.RequesterID,
		&b.Schedule.SlotID,
		&b.Schedule.Date,
		&b.Schedule.StartTime,
		&b.Schedule.EndTime,
		&b.Schedule.DurationMinutes,
		&items,
		&b.Pricing.BaseCents,
		&b.Pricing.TaxRateBasisPoints,
		&b.Pricing.TaxCents,
		&b.Pricing.FinalCents,
		&b.Pricing.Currency,
		&status,
		&b.Notes,
		&b.PaymentIntentID,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &b.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}

	return &b, nil
}
