package draft

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/wedgo/internal/domain"
)

// Source is the read side of the booking API.
type Source interface {
	GetVendor(ctx context.Context, id int64) (*domain.Vendor, error)
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
	ListServices(ctx context.Context, vendorID int64) ([]domain.Service, error)
	ListAvailability(ctx context.Context, vendorID int64, venueID *int64) ([]domain.Availability, error)
}

// Catalog is everything a draft needs to price and schedule a booking.
type Catalog struct {
	Vendor       domain.Vendor
	Venue        *domain.Venue
	Services     []domain.Service
	Availability []domain.Availability
}

// Load fetches the catalog for a vendor and optional venue concurrently.
// The first failure cancels the remaining requests.
func Load(ctx context.Context, src Source, vendorID int64, venueID *int64) (*Catalog, error) {
	const op = "draft.Load"

	var c Catalog
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := src.GetVendor(gCtx, vendorID)
		if err != nil {
			return err
		}
		c.Vendor = *v
		return nil
	})

	if venueID != nil {
		g.Go(func() error {
			v, err := src.GetVenue(gCtx, *venueID)
			if err != nil {
				return err
			}
			c.Venue = v
			return nil
		})
	}

	g.Go(func() error {
		ss, err := src.ListServices(gCtx, vendorID)
		if err != nil {
			return err
		}
		c.Services = ss
		return nil
	})

	g.Go(func() error {
		av, err := src.ListAvailability(gCtx, vendorID, venueID)
		if err != nil {
			return err
		}
		c.Availability = av
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}
