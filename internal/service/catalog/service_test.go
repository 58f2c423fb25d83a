package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/wedgo/internal/repository/redis"
)

func newService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := New(postgresrepo.NewStore(mock), redisrepo.New(rdb), Config{})
	s.now = func() time.Time { return time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC) }
	return s, mock
}

func TestGetVendorIsCached(t *testing.T) {
	s, mock := newService(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM vendors WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "description", "location", "created_at"}).
			AddRow(int64(1), "Bloom & Co", "florist", "", "Lisbon", created))

	for i := 0; i < 3; i++ {
		v, err := s.GetVendor(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Bloom & Co", v.Name)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVendorNotFound(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectQuery("FROM vendors WHERE id").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)

	_, err := s.GetVendor(context.Background(), 2)
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestGetVenueNotFound(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectQuery("FROM venues WHERE id").WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)

	_, err := s.GetVenue(context.Background(), 3)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

var slotCols = []string{
	"id", "vendor_id", "venue_id", "slot_date", "start_time", "end_time",
	"available", "price_cents", "capacity", "booked_count",
}

func TestAvailabilityGroupsAndFilters(t *testing.T) {
	s, mock := newService(t)
	june20 := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	june21 := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM time_slots").
		WithArgs(int64(10), (*int64)(nil), time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(pgxmock.NewRows(slotCols).
			AddRow(int64(2), int64(10), (*int64)(nil), june20, "14:00", "18:00", true, int64(0), 1, 0).
			AddRow(int64(1), int64(10), (*int64)(nil), june20, "09:00", "12:00", false, int64(0), 1, 1).
			AddRow(int64(3), int64(10), (*int64)(nil), june21, "10:00", "16:00", true, int64(0), 2, 0))

	all, err := s.Availability(context.Background(), 10, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Date.Equal(june20))
	require.Len(t, all[0].Slots, 2)
	assert.Equal(t, "09:00", all[0].Slots[0].StartTime)

	day := time.Date(2026, 6, 21, 15, 0, 0, 0, time.UTC)
	one, err := s.Availability(context.Background(), 10, nil, &day)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, int64(3), one[0].Slots[0].ID)

	none := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	empty, err := s.Availability(context.Background(), 10, nil, &none)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.NoError(t, mock.ExpectationsWereMet(), "later calls are served from cache")
}

func TestAvailabilityVenueAndAllVenuesCachedApart(t *testing.T) {
	s, mock := newService(t)
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	june20 := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	venue := int64(5)

	mock.ExpectQuery("FROM time_slots").
		WithArgs(int64(10), &venue, today).
		WillReturnRows(pgxmock.NewRows(slotCols))
	mock.ExpectQuery("FROM time_slots").
		WithArgs(int64(10), (*int64)(nil), today).
		WillReturnRows(pgxmock.NewRows(slotCols).
			AddRow(int64(1), int64(10), (*int64)(nil), june20, "10:00", "14:00", true, int64(0), 1, 0))

	atVenue, err := s.Availability(context.Background(), 10, &venue, nil)
	require.NoError(t, err)
	assert.Empty(t, atVenue)

	all, err := s.Availability(context.Background(), 10, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Slots, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}
