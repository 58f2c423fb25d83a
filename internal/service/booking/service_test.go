package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/wedgo/internal/domain"
	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
)

type fixture struct {
	svc  *Service
	mock pgxmock.PgxPoolIface
	mr   *miniredis.Miniredis
}

func newFixture(t *testing.T, limit int) fixture {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var limiter *redisrepo.BookingLimiter
	if limit > 0 {
		limiter = redisrepo.NewBookingLimiter(rdb, limit, time.Minute)
	}

	svc := New(
		postgresrepo.NewStore(mock),
		redisrepo.New(rdb),
		redisrepo.NewAvailabilityPubSub(rdb),
		limiter,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return fixture{svc: svc, mock: mock, mr: mr}
}

var (
	serializableRW = pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite}
	weddingDay     = time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	serviceCols = []string{
		"id", "vendor_id", "name", "description", "price_cents", "duration_minutes", "max_capacity", "customizations",
	}
	slotCols = []string{
		"id", "vendor_id", "venue_id", "slot_date", "start_time", "end_time",
		"available", "price_cents", "capacity", "booked_count",
	}
	bookingCols = []string{
		"id", "vendor_id", "venue_id", "requester_id", "slot_id", "slot_date", "start_time", "end_time",
		"duration_minutes", "items", "base_cents", "tax_rate_bps", "tax_cents", "final_cents", "currency",
		"status", "notes", "payment_intent_id", "created_at", "updated_at",
	}
)

func validRequest() CreateRequest {
	return CreateRequest{
		VendorID:    10,
		RequesterID: 77,
		Items: []domain.SelectedService{
			{ServiceID: 1, Quantity: 2},
			{ServiceID: 2, Quantity: 1, Customizations: map[string]string{"flavor": "vanilla"}},
		},
		SlotID: 5,
		Date:   weddingDay,
	}
}

func expectServices(mock pgxmock.PgxPoolIface) {
	four := 4
	mock.ExpectQuery("FROM services").
		WithArgs(int64(10), []int64{1, 2}).
		WillReturnRows(pgxmock.NewRows(serviceCols).
			AddRow(int64(1), int64(10), "Chairs", "", int64(1000), 0, &four, []byte(`[]`)).
			AddRow(int64(2), int64(10), "Cake", "", int64(1500), 0, (*int)(nil),
				[]byte(`[{"name":"flavor","type":"select","options":["vanilla","lemon"],"required":true}]`)))
}

func expectReserve(mock pgxmock.PgxPoolIface) *pgxmock.ExpectedQuery {
	return mock.ExpectQuery("UPDATE time_slots").WithArgs(int64(5), int64(10), (*int64)(nil))
}

func slotRow(date time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(slotCols).
		AddRow(int64(5), int64(10), (*int64)(nil), date, "10:00", "14:30", true, int64(0), 2, 1)
}

func insertArgs() []any {
	args := make([]any, 17)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func expectInsert(mock pgxmock.PgxPoolIface) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(insertArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
}

func TestCreateRecomputesPricingAndReservesSlot(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, f.mr.Set(redisrepo.KeyAvailabilityAllVenues(10), "[]"))

	expectServices(f.mock)
	f.mock.ExpectBeginTx(serializableRW)
	expectReserve(f.mock).WillReturnRows(slotRow(weddingDay))
	expectInsert(f.mock)
	f.mock.ExpectCommit()

	req := validRequest()
	req.Pricing = &domain.Pricing{BaseCents: 1, TaxCents: 1, FinalCents: 2, Currency: "USD"}

	b, err := f.svc.Create(context.Background(), req, "")
	require.NoError(t, err)

	assert.Equal(t, domain.Pricing{
		BaseCents:          3500,
		TaxRateBasisPoints: 1500,
		TaxCents:           525,
		FinalCents:         4025,
		Currency:           "USD",
	}, b.Pricing, "server pricing wins over the client snapshot")
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, int64(5), b.Schedule.SlotID)
	assert.Equal(t, 270, b.Schedule.DurationMinutes)
	require.Len(t, b.Items, 2)
	assert.Equal(t, "Chairs", b.Items[0].Name)
	assert.NotEqual(t, uuid.Nil, b.ID)

	assert.False(t, f.mr.Exists(redisrepo.KeyAvailabilityAllVenues(10)), "availability cache is invalidated after commit")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateRejectsLocallyInvalidRequests(t *testing.T) {
	cases := map[string]struct {
		mutate func(*CreateRequest)
		want   error
	}{
		"empty selection": {func(r *CreateRequest) { r.Items = nil }, ErrEmptySelection},
		"no date":         {func(r *CreateRequest) { r.Date = time.Time{} }, ErrNoDate},
		"no slot":         {func(r *CreateRequest) { r.SlotID = 0 }, ErrNoSlot},
		"no requester":    {func(r *CreateRequest) { r.RequesterID = 0 }, ErrNoRequester},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 0)
			req := validRequest()
			tc.mutate(&req)

			_, err := f.svc.Create(context.Background(), req, "")
			assert.ErrorIs(t, err, tc.want)

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.NoError(t, f.mock.ExpectationsWereMet(), "no database access")
		})
	}
}

func TestCreateValidatesAgainstCatalog(t *testing.T) {
	cases := map[string]struct {
		items []domain.SelectedService
		want  error
	}{
		"unknown service": {
			[]domain.SelectedService{{ServiceID: 1, Quantity: 1}, {ServiceID: 3, Quantity: 1}},
			ErrUnknownService,
		},
		"over capacity": {
			[]domain.SelectedService{{ServiceID: 1, Quantity: 5}, {ServiceID: 2, Quantity: 1, Customizations: map[string]string{"flavor": "lemon"}}},
			ErrCapacityExceeded,
		},
		"bad customization": {
			[]domain.SelectedService{{ServiceID: 1, Quantity: 1}, {ServiceID: 2, Quantity: 1, Customizations: map[string]string{"flavor": "chocolate"}}},
			domain.ErrInvalidCustomization,
		},
		"missing customization": {
			[]domain.SelectedService{{ServiceID: 1, Quantity: 1}, {ServiceID: 2, Quantity: 1}},
			domain.ErrMissingCustomization,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 0)
			ids := make([]int64, 0, len(tc.items))
			for _, it := range tc.items {
				ids = append(ids, it.ServiceID)
			}

			four := 4
			f.mock.ExpectQuery("FROM services").
				WithArgs(int64(10), ids).
				WillReturnRows(pgxmock.NewRows(serviceCols).
					AddRow(int64(1), int64(10), "Chairs", "", int64(1000), 0, &four, []byte(`[]`)).
					AddRow(int64(2), int64(10), "Cake", "", int64(1500), 0, (*int)(nil),
						[]byte(`[{"name":"flavor","type":"select","options":["vanilla","lemon"],"required":true}]`)))

			req := validRequest()
			req.Items = tc.items

			_, err := f.svc.Create(context.Background(), req, "")
			assert.ErrorIs(t, err, tc.want)
			assert.NoError(t, f.mock.ExpectationsWereMet())
		})
	}
}

func TestCreateSlotUnavailable(t *testing.T) {
	f := newFixture(t, 0)

	expectServices(f.mock)
	f.mock.ExpectBeginTx(serializableRW)
	expectReserve(f.mock).WillReturnError(pgx.ErrNoRows)
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), validRequest(), "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateRetriesSerializationFailure(t *testing.T) {
	f := newFixture(t, 0)

	expectServices(f.mock)
	f.mock.ExpectBeginTx(serializableRW)
	expectReserve(f.mock).WillReturnError(&pgconn.PgError{Code: "40001"})
	f.mock.ExpectRollback()
	f.mock.ExpectBeginTx(serializableRW)
	expectReserve(f.mock).WillReturnRows(slotRow(weddingDay))
	expectInsert(f.mock)
	f.mock.ExpectCommit()

	_, err := f.svc.Create(context.Background(), validRequest(), "")
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateRejectsScheduleMismatch(t *testing.T) {
	f := newFixture(t, 0)

	expectServices(f.mock)
	f.mock.ExpectBeginTx(serializableRW)
	expectReserve(f.mock).WillReturnRows(slotRow(weddingDay.AddDate(0, 0, 1)))
	f.mock.ExpectRollback()

	_, err := f.svc.Create(context.Background(), validRequest(), "")
	assert.ErrorIs(t, err, ErrScheduleMismatch)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateRateLimited(t *testing.T) {
	f := newFixture(t, 1)
	req := validRequest()
	req.Items = nil

	_, err := f.svc.Create(context.Background(), req, "ip:10.0.0.1")
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = f.svc.Create(context.Background(), req, "ip:10.0.0.1")
	var rl *RateLimitedError
	require.ErrorAs(t, err, &rl)
	assert.Greater(t, rl.RetryAfter, time.Duration(0))
}

func bookingRow(id uuid.UUID, status domain.BookingStatus, paymentIntent string) *pgxmock.Rows {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(bookingCols).AddRow(
		id, int64(10), (*int64)(nil), int64(77), int64(5), weddingDay, "10:00", "14:30",
		270, []byte(`[{"service_id":1,"name":"Chairs","unit_price_cents":1000,"quantity":2}]`),
		int64(2000), int64(1500), int64(300), int64(2300), "USD",
		string(status), "", paymentIntent, now, now,
	)
}

func TestCancelReleasesSlot(t *testing.T) {
	f := newFixture(t, 0)
	id := uuid.New()

	f.mock.ExpectBeginTx(serializableRW)
	f.mock.ExpectQuery("FOR UPDATE").WithArgs(id).WillReturnRows(bookingRow(id, domain.BookingPending, ""))
	f.mock.ExpectExec("UPDATE bookings SET status").WithArgs(id, "cancelled").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectExec("UPDATE time_slots").WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectCommit()

	b, err := f.svc.Cancel(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	require.Len(t, b.Items, 1)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCancelTwice(t *testing.T) {
	f := newFixture(t, 0)
	id := uuid.New()

	f.mock.ExpectBeginTx(serializableRW)
	f.mock.ExpectQuery("FOR UPDATE").WithArgs(id).WillReturnRows(bookingRow(id, domain.BookingCancelled, ""))
	f.mock.ExpectRollback()

	_, err := f.svc.Cancel(context.Background(), id)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	f := newFixture(t, 0)
	id := uuid.New()
	f.mock.ExpectQuery("FROM bookings WHERE id").WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err := f.svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirm(t *testing.T) {
	t.Run("needs a payment", func(t *testing.T) {
		f := newFixture(t, 0)
		id := uuid.New()

		f.mock.ExpectBeginTx(serializableRW)
		f.mock.ExpectQuery("FOR UPDATE").WithArgs(id).WillReturnRows(bookingRow(id, domain.BookingPending, ""))
		f.mock.ExpectRollback()

		_, err := f.svc.Confirm(context.Background(), id, "")
		assert.ErrorIs(t, err, ErrPaymentMissing)
	})

	t.Run("uses the stored intent", func(t *testing.T) {
		f := newFixture(t, 0)
		id := uuid.New()

		f.mock.ExpectBeginTx(serializableRW)
		f.mock.ExpectQuery("FOR UPDATE").WithArgs(id).WillReturnRows(bookingRow(id, domain.BookingPending, "pi_123"))
		f.mock.ExpectExec("UPDATE bookings SET status").WithArgs(id, "confirmed").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		f.mock.ExpectCommit()

		b, err := f.svc.Confirm(context.Background(), id, "")
		require.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, b.Status)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects cancelled", func(t *testing.T) {
		f := newFixture(t, 0)
		id := uuid.New()

		f.mock.ExpectBeginTx(serializableRW)
		f.mock.ExpectQuery("FOR UPDATE").WithArgs(id).WillReturnRows(bookingRow(id, domain.BookingCancelled, "pi_1"))
		f.mock.ExpectRollback()

		_, err := f.svc.Confirm(context.Background(), id, "pi_2")
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestValidationErrorMessage(t *testing.T) {
	err := invalid(ErrCapacityExceeded, "%s allows at most %d", "Chairs", 4)
	assert.Equal(t, "quantity exceeds service capacity: Chairs allows at most 4", err.Error())
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, "no services selected", invalid(ErrEmptySelection, "").Error())
}
