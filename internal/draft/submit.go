package draft

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/kirinyoku/wedgo/internal/client"
	"github.com/kirinyoku/wedgo/internal/domain"
)

const genericFailure = "Something went wrong while creating your booking. Please try again."

var ErrSubmitInProgress = errors.New("a booking is already being submitted")

type State int32

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// BookingCreator posts a serialized draft.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req client.CreateBookingRequest) (*domain.Booking, error)
}

// Submitter sends a draft exactly once per call. It does not retry and
// never mutates the draft, so a failed call can be retried by the user as is.
type Submitter struct {
	api    BookingCreator
	logger *slog.Logger
	state  atomic.Int32
}

func NewSubmitter(api BookingCreator, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{api: api, logger: logger}
}

func (s *Submitter) State() State { return State(s.state.Load()) }

// Submit validates d locally and, if valid, creates the booking.
// onSuccess runs with the created booking only when the call succeeds.
func (s *Submitter) Submit(ctx context.Context, d *Draft, onSuccess func(*domain.Booking)) error {
	req, err := d.Request()
	if err != nil {
		return err
	}

	if !s.state.CompareAndSwap(int32(Idle), int32(Submitting)) {
		return ErrSubmitInProgress
	}
	defer s.state.Store(int32(Idle))

	b, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		s.logger.Warn("booking submission failed",
			slog.Int64("vendor_id", req.VendorID),
			slog.Int64("slot_id", req.Schedule.SlotID),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("booking created",
		slog.String("booking_id", b.ID.String()),
		slog.Int64("final_cents", b.Pricing.FinalCents),
	)
	if onSuccess != nil {
		onSuccess(b)
	}
	return nil
}

// UserMessage turns a submission error into text fit for display.
// Validation problems and backend error strings pass through; transport
// failures collapse to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrSubmitInProgress) {
		return err.Error()
	}
	return genericFailure
}
