package booking

import (
	"github.com/kirinyoku/wedgo/internal/domain"
)

// checkRequest applies the same local rules a draft enforces before submission.
func checkRequest(req CreateRequest) error {
	switch {
	case req.RequesterID <= 0:
		return invalid(ErrNoRequester, "")
	case len(req.Items) == 0:
		return invalid(ErrEmptySelection, "")
	case req.Date.IsZero():
		return invalid(ErrNoDate, "")
	case req.SlotID <= 0:
		return invalid(ErrNoSlot, "")
	}

	return nil
}

// checkItems validates each selection against the vendor's catalog.
func checkItems(items []domain.SelectedService, catalog map[int64]domain.Service) error {
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		svc, ok := catalog[it.ServiceID]
		if !ok {
			return invalid(ErrUnknownService, "%d", it.ServiceID)
		}
		if _, dup := seen[it.ServiceID]; dup {
			return invalid(ErrDuplicateService, "%s", svc.Name)
		}
		seen[it.ServiceID] = struct{}{}

		if it.Quantity < 1 {
			return invalid(ErrInvalidQuantity, "%s", svc.Name)
		}
		if svc.MaxCapacity != nil && it.Quantity > *svc.MaxCapacity {
			return invalid(ErrCapacityExceeded, "%s allows at most %d", svc.Name, *svc.MaxCapacity)
		}
		if err := svc.ValidateCustomizations(it.Customizations); err != nil {
			return &ValidationError{Err: err}
		}
	}

	return nil
}
