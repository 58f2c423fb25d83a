package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"

	"github.com/kirinyoku/wedgo/internal/domain"
	"github.com/kirinyoku/wedgo/internal/repository"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotPayable      = errors.New("booking cannot be paid")
)

// IntentCreator is implemented by the Stripe PaymentIntents client.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type Checkout struct {
	BookingID       uuid.UUID `json:"booking_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	ClientSecret    string    `json:"client_secret"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
}

type Service struct {
	store   *postgresrepo.Store
	intents IntentCreator
	logger  *slog.Logger
}

func New(store *postgresrepo.Store, intents IntentCreator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:   store,
		intents: intents,
		logger:  logger,
	}
}

// Checkout opens a payment intent for the booking's final amount and records
// it on the booking. Repeated calls for one booking reuse the same Stripe
// idempotency key, so they resolve to the same intent.
//
// Returns:
//   - error: payments.ErrBookingNotFound if the booking is not found.
//   - error: payments.ErrNotPayable if the booking is cancelled or already confirmed.
func (s *Service) Checkout(ctx context.Context, bookingID uuid.UUID) (*Checkout, error) {
	const op = "service.payments.Checkout"

	b, err := s.store.Bookings().Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if b.Status != domain.BookingPending || b.Pricing.FinalCents <= 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrNotPayable)
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(b.Pricing.FinalCents),
		Currency:    stripe.String(strings.ToLower(b.Pricing.Currency)),
		Description: stripe.String("Booking " + b.ID.String()),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("booking:" + b.ID.String())
	params.AddMetadata("booking_id", b.ID.String())
	params.AddMetadata("vendor_id", strconv.FormatInt(b.VendorID, 10))
	params.AddMetadata("requester_id", strconv.FormatInt(b.RequesterID, 10))

	pi, err := s.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%s: create intent: %w", op, err)
	}

	if err := s.store.Bookings().SetPaymentIntent(ctx, b.ID, pi.ID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.logger.Info("payment intent created",
		slog.String("booking_id", b.ID.String()),
		slog.String("payment_intent_id", pi.ID),
		slog.Int64("amount_cents", b.Pricing.FinalCents),
	)

	return &Checkout{
		BookingID:       b.ID,
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		AmountCents:     b.Pricing.FinalCents,
		Currency:        b.Pricing.Currency,
	}, nil
}
