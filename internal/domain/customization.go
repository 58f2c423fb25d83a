package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrMissingCustomization = errors.New("missing required customization")
	ErrInvalidCustomization = errors.New("invalid customization value")
	ErrUnknownCustomization = errors.New("unknown customization")
)

// CustomizationError reports which customization of which service failed.
type CustomizationError struct {
	Service string
	Key     string
	Err     error
}

func (e *CustomizationError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Service, e.Key, e.Err)
}

func (e *CustomizationError) Unwrap() error { return e.Err }

// Customization returns the definition with the given name.
func (s Service) Customization(name string) (Customization, bool) {
	for _, c := range s.Customizations {
		if c.Name == name {
			return c, true
		}
	}
	return Customization{}, false
}

// ValidateCustomizations checks answers against the service's definitions.
// Blank answers count as missing.
func (s Service) ValidateCustomizations(values map[string]string) error {
	for key := range values {
		if _, ok := s.Customization(key); !ok {
			return &CustomizationError{Service: s.Name, Key: key, Err: ErrUnknownCustomization}
		}
	}

	for _, c := range s.Customizations {
		v := strings.TrimSpace(values[c.Name])
		if v == "" {
			if c.Required {
				return &CustomizationError{Service: s.Name, Key: c.Name, Err: ErrMissingCustomization}
			}
			continue
		}
		if err := c.Check(v); err != nil {
			return &CustomizationError{Service: s.Name, Key: c.Name, Err: err}
		}
	}

	return nil
}

// Check validates a single non-empty answer against the definition type.
func (c Customization) Check(v string) error {
	switch c.Type {
	case CustomizationText, "":
		return nil
	case CustomizationNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidCustomization, v)
		}
	case CustomizationBoolean:
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidCustomization, v)
		}
	case CustomizationSelect:
		if !slices.Contains(c.Options, v) {
			return fmt.Errorf("%w: %q is not one of %v", ErrInvalidCustomization, v, c.Options)
		}
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidCustomization, c.Type)
	}
	return nil
}
