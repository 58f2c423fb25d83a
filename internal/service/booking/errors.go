package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptySelection   = errors.New("no services selected")
	ErrNoDate           = errors.New("no date selected")
	ErrNoSlot           = errors.New("no time slot selected")
	ErrNoRequester      = errors.New("requester is required")
	ErrUnknownService   = errors.New("unknown service")
	ErrDuplicateService = errors.New("service selected more than once")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCapacityExceeded = errors.New("quantity exceeds service capacity")
	ErrScheduleMismatch = errors.New("schedule does not match the time slot")

	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrNotPending       = errors.New("booking is not pending")
	ErrPaymentMissing   = errors.New("booking has no payment attached")
)

// ValidationError is a request the service refuses before touching any slot.
type ValidationError struct {
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// RateLimitedError carries how long the caller should wait.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}
