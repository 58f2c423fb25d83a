package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kirinyoku/wedgo/internal/domain"
)

func checkService(svc *domain.Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	switch {
	case svc.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case svc.PriceCents < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case svc.DurationMinutes < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	case svc.MaxCapacity != nil && *svc.MaxCapacity < 1:
		return fmt.Errorf("%w: max capacity must be at least 1", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(svc.Customizations))
	for _, c := range svc.Customizations {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: customization without a name", ErrInvalidInput)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: customization %q declared twice", ErrInvalidInput, c.Name)
		}
		seen[c.Name] = struct{}{}

		switch c.Type {
		case domain.CustomizationText, domain.CustomizationNumber, domain.CustomizationBoolean:
		case domain.CustomizationSelect:
			if len(c.Options) == 0 {
				return fmt.Errorf("%w: select customization %q has no options", ErrInvalidInput, c.Name)
			}
		default:
			return fmt.Errorf("%w: customization %q has unknown type %q", ErrInvalidInput, c.Name, c.Type)
		}
	}

	return nil
}

// checkSlot validates sl and rewrites its clocks into canonical HH:MM.
func checkSlot(sl *domain.TimeSlot) error {
	if sl.Date.IsZero() {
		return errors.New("date is required")
	}

	start, err := domain.CanonicalClock(sl.StartTime)
	if err != nil {
		return err
	}
	end, err := domain.CanonicalClock(sl.EndTime)
	if err != nil {
		return err
	}
	if _, err := domain.DurationMinutes(start, end); err != nil {
		return err
	}
	sl.StartTime, sl.EndTime = start, end

	if sl.Capacity < 1 {
		return errors.New("capacity must be at least 1")
	}
	if sl.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}
