package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kirinyoku/wedgo/internal/domain"
)

type CatalogRepo struct {
	pool Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const serviceColumns = `id, vendor_id, name, description, price_cents, duration_minutes, max_capacity, customizations`

// slotColumns reports a slot as available only while it still has capacity.
const slotColumns = `id, vendor_id, venue_id, slot_date, start_time, end_time,
	is_available AND booked_count < capacity, price_cents, capacity, booked_count`

// GetVendor retrieves a vendor by its ID.
//
// Returns:
//   - *domain.Vendor: the vendor when found.
//   - error: repository.ErrNotFound if the vendor is not found.
func (r *CatalogRepo) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	const op = "postgresrepo.CatalogRepo.GetVendor"

	var v domain.Vendor
	err := r.handle().QueryRow(ctx,
		`SELECT id, name, category, description, location, created_at
		 FROM vendors WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Category, &v.Description, &v.Location, &v.CreatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

// GetVenue retrieves a venue by its ID.
//
// Returns:
//   - *domain.Venue: the venue when found.
//   - error: repository.ErrNotFound if the venue is not found.
func (r *CatalogRepo) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "postgresrepo.CatalogRepo.GetVenue"

	var v domain.Venue
	err := r.handle().QueryRow(ctx,
		`SELECT id, vendor_id, name, address, capacity
		 FROM venues WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.VendorID, &v.Name, &v.Address, &v.Capacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

// ListServices lists a vendor's services ordered by name.
func (r *CatalogRepo) ListServices(ctx context.Context, vendorID int64) ([]domain.Service, error) {
	const op = "postgresrepo.CatalogRepo.ListServices"

	rows, err := r.handle().Query(ctx,
		`SELECT `+serviceColumns+`
		 FROM services
		 WHERE vendor_id = $1
		 ORDER BY name, id`,
		vendorID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanServices(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ServicesByIDs loads the given services, restricted to those the vendor owns.
// Missing IDs are simply absent from the result.
func (r *CatalogRepo) ServicesByIDs(ctx context.Context, vendorID int64, ids []int64) ([]domain.Service, error) {
	const op = "postgresrepo.CatalogRepo.ServicesByIDs"

	rows, err := r.handle().Query(ctx,
		`SELECT `+serviceColumns+`
		 FROM services
		 WHERE vendor_id = $1 AND id = ANY($2)`,
		vendorID, ids,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	out, err := scanServices(rows)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// ListSlots lists a vendor's slots from the given day onward. A nil venueID
// includes slots of every venue.
func (r *CatalogRepo) ListSlots(
	ctx context.Context,
	vendorID int64,
	venueID *int64,
	from time.Time,
) ([]domain.TimeSlot, error) {
	const op = "postgresrepo.CatalogRepo.ListSlots"

	rows, err := r.handle().Query(ctx,
		`SELECT `+slotColumns+`
		 FROM time_slots
		 WHERE vendor_id = $1
		   AND ($2::bigint IS NULL OR venue_id = $2)
		   AND slot_date >= $3
		 ORDER BY slot_date, start_time, id`,
		vendorID, venueID, from,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.TimeSlot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func scanServices(rows pgx.Rows) ([]domain.Service, error) {
	defer rows.Close()

	out := []domain.Service{}
	for rows.Next() {
		var (
			s       domain.Service
			customs []byte
		)
		if err := rows.Scan(
			&s.ID,
			&s.VendorID,
			&s.Name,
			&s.Description,
			&s.PriceCents,
			&s.DurationMinutes,
			&s.MaxCapacity,
			&customs,
		); err != nil {
			return nil, err
		}
		if len(customs) > 0 {
			if err := json.Unmarshal(customs, &s.Customizations); err != nil {
				return nil, fmt.Errorf("decode customizations of service %d: %w", s.ID, err)
			}
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func scanSlot(row pgx.Row) (domain.TimeSlot, error) {
	var s domain.TimeSlot
	err := row.Scan(
		&s.ID,
		&s.VendorID,
		&s.VenueID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.IsAvailable,
		&s.PriceCents,
		&s.Capacity,
		&s.BookedCount,
	)
	return s, err
}
