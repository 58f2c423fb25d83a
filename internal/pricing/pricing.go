// Package pricing derives booking totals in integer cents.
package pricing

import (
	"errors"
	"fmt"

	"github.com/kirinyoku/wedgo/internal/domain"
)

const (
	// TaxRateBasisPoints is the flat 15% tax applied to every booking.
	TaxRateBasisPoints int64 = 1500
	Currency                 = "USD"

	basisPointsScale int64 = 10000
)

var (
	ErrUnknownService  = errors.New("unknown service")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Index maps services by ID for lookups during pricing.
func Index(services []domain.Service) map[int64]domain.Service {
	out := make(map[int64]domain.Service, len(services))
	for _, s := range services {
		out[s.ID] = s
	}
	return out
}

// Items freezes the selection into booking items using catalog prices.
func Items(selections []domain.SelectedService, catalog map[int64]domain.Service) ([]domain.BookingItem, error) {
	const op = "pricing.Items"

	items := make([]domain.BookingItem, 0, len(selections))
	for _, sel := range selections {
		svc, ok := catalog[sel.ServiceID]
		if !ok {
			return nil, fmt.Errorf("%s: %w: %d", op, ErrUnknownService, sel.ServiceID)
		}
		if sel.Quantity < 1 {
			return nil, fmt.Errorf("%s: %w: service %d", op, ErrInvalidQuantity, sel.ServiceID)
		}
		items = append(items, domain.BookingItem{
			ServiceID:      svc.ID,
			Name:           svc.Name,
			UnitPriceCents: svc.PriceCents,
			Quantity:       sel.Quantity,
			Customizations: copyValues(sel.Customizations),
		})
	}

	return items, nil
}

// Calculate prices the selection against the catalog.
func Calculate(selections []domain.SelectedService, catalog map[int64]domain.Service) (domain.Pricing, error) {
	items, err := Items(selections, catalog)
	if err != nil {
		return domain.Pricing{}, err
	}
	return FromItems(items), nil
}

// FromItems prices already frozen booking items.
func FromItems(items []domain.BookingItem) domain.Pricing {
	var base int64
	for _, it := range items {
		base += it.UnitPriceCents * int64(it.Quantity)
	}
	return FromBase(base)
}

// FromBase applies tax to a base amount.
func FromBase(base int64) domain.Pricing {
	tax := Tax(base)
	return domain.Pricing{
		BaseCents:          base,
		TaxRateBasisPoints: TaxRateBasisPoints,
		TaxCents:           tax,
		FinalCents:         base + tax,
		Currency:           Currency,
	}
}

// Tax returns base × 15%, rounded half-up to the cent.
func Tax(base int64) int64 {
	if base <= 0 {
		return 0
	}
	return (base*TaxRateBasisPoints + basisPointsScale/2) / basisPointsScale
}

// Format renders cents as a decimal amount with the currency code.
func Format(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}

func copyValues(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
