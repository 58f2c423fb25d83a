package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/wedgo/internal/domain"
)

type AdminRepo struct {
	pool Pool
	db   DB
}

func (r *AdminRepo) With(db DB) *AdminRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AdminRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *AdminRepo) CreateVendor(ctx context.Context, v domain.Vendor) (int64, error) {
	const op = "postgresrepo.AdminRepo.CreateVendor"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO vendors(name, category, description, location)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		v.Name, v.Category, v.Description, v.Location,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *AdminRepo) CreateVenue(ctx context.Context, v domain.Venue) (int64, error) {
	const op = "postgresrepo.AdminRepo.CreateVenue"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO venues(vendor_id, name, address, capacity)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		v.VendorID, v.Name, v.Address, v.Capacity,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *AdminRepo) CreateService(ctx context.Context, s domain.Service) (int64, error) {
	const op = "postgresrepo.AdminRepo.CreateService"

	customs := s.Customizations
	if customs == nil {
		customs = []domain.Customization{}
	}
	raw, err := json.Marshal(customs)
	if err != nil {
		return 0, fmt.Errorf("%s: encode customizations: %w", op, err)
	}

	var id int64
	if err := r.handle().QueryRow(ctx,
		`INSERT INTO services(vendor_id, name, description, price_cents, duration_minutes, max_capacity, customizations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.VendorID, s.Name, s.Description, s.PriceCents, s.DurationMinutes, s.MaxCapacity, raw,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// BatchCreateSlots inserts slots, skipping ones that already exist for the same
// vendor, venue, day and start time. It returns how many were inserted.
func (r *AdminRepo) BatchCreateSlots(ctx context.Context, slots []domain.TimeSlot) (int64, error) {
	const op = "postgresrepo.AdminRepo.BatchCreateSlots"

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(
			`INSERT INTO time_slots(vendor_id, venue_id, slot_date, start_time, end_time, is_available, price_cents, capacity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT DO NOTHING`,
			s.VendorID, s.VenueID, s.Date, s.StartTime, s.EndTime, s.IsAvailable, s.PriceCents, s.Capacity,
		)
	}

	br := r.handle().SendBatch(ctx, batch)
	defer br.Close()

	var inserted int64
	for range slots {
		tag, err := br.Exec()
		if err != nil {
			return inserted, wrapDBErr(op, err)
		}
		inserted += tag.RowsAffected()
	}

	if err := br.Close(); err != nil {
		return inserted, wrapDBErr(op, err)
	}

	return inserted, nil
}

// SetSlotAvailability toggles whether a slot can be booked and returns its vendor.
//
// Returns:
//   - error: repository.ErrNotFound if the slot is not found.
func (r *AdminRepo) SetSlotAvailability(ctx context.Context, slotID int64, available bool) (int64, error) {
	const op = "postgresrepo.AdminRepo.SetSlotAvailability"

	var vendorID int64
	if err := r.handle().QueryRow(ctx,
		`UPDATE time_slots SET is_available = $2 WHERE id = $1 RETURNING vendor_id`,
		slotID, available,
	).Scan(&vendorID); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return vendorID, nil
}
