package redisrepo

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

type payload struct {
	Name string `json:"name"`
}

func TestGetOrSetJSON(t *testing.T) {
	mr, rdb := newRedis(t)
	c := New(rdb)
	ctx := context.Background()

	var calls atomic.Int32
	loader := func(ctx context.Context) (payload, error) {
		calls.Add(1)
		return payload{Name: "Garden Hall"}, nil
	}

	v, err := GetOrSetJSON(ctx, c, KeyVenue(1), time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "Garden Hall", v.Name)

	v, err = GetOrSetJSON(ctx, c, KeyVenue(1), time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "Garden Hall", v.Name)
	assert.Equal(t, int32(1), calls.Load())

	assert.True(t, mr.Exists(KeyVenue(1)))
	assert.Equal(t, time.Minute, mr.TTL(KeyVenue(1)))

	mr.FastForward(2 * time.Minute)
	_, err = GetOrSetJSON(ctx, c, KeyVenue(1), time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetOrSetJSONFallsThroughWhenCacheDown(t *testing.T) {
	mr, rdb := newRedis(t)
	c := New(rdb)
	mr.Close()

	v, err := GetOrSetJSON(context.Background(), c, KeyVendor(1), time.Minute, func(ctx context.Context) (payload, error) {
		return payload{Name: "direct"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", v.Name)
}

func TestGetOrSetJSONReplacesCorruptEntry(t *testing.T) {
	mr, rdb := newRedis(t)
	c := New(rdb)
	require.NoError(t, mr.Set(KeyVendor(2), "not json"))

	v, err := GetOrSetJSON(context.Background(), c, KeyVendor(2), time.Minute, func(ctx context.Context) (payload, error) {
		return payload{Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v.Name)

	got, err := mr.Get(KeyVendor(2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"fresh"}`, got)
}

func TestGetOrSetJSONHonoursCallerContext(t *testing.T) {
	_, rdb := newRedis(t)
	c := New(rdb)

	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetOrSetJSON(ctx, c, KeyVendor(3), time.Minute, func(ctx context.Context) (payload, error) {
		<-release
		return payload{}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidateVendor(t *testing.T) {
	mr, rdb := newRedis(t)
	c := New(rdb)
	ctx := context.Background()

	for _, k := range []string{
		KeyVendor(7), KeyVendorServices(7), KeyAvailabilityAllVenues(7), KeyAvailability(7, 3), KeyAvailabilityAllVenues(8),
	} {
		require.NoError(t, mr.Set(k, "{}"))
	}

	require.NoError(t, c.InvalidateVendor(ctx, 7))

	assert.False(t, mr.Exists(KeyVendor(7)))
	assert.False(t, mr.Exists(KeyVendorServices(7)))
	assert.False(t, mr.Exists(KeyAvailabilityAllVenues(7)))
	assert.False(t, mr.Exists(KeyAvailability(7, 3)))
	assert.True(t, mr.Exists(KeyAvailabilityAllVenues(8)))
}

func TestIdempotencyStore(t *testing.T) {
	mr, rdb := newRedis(t)
	s := NewIdempotencyStore(rdb, time.Minute, time.Hour)
	ctx := context.Background()
	key := KeyIdemBooking("abc")

	state, resp, err := s.Begin(ctx, key, "fp1")
	require.NoError(t, err)
	assert.Equal(t, IdemStarted, state)
	assert.Nil(t, resp)

	state, _, err = s.Begin(ctx, key, "fp1")
	require.NoError(t, err)
	assert.Equal(t, IdemInFlight, state)

	require.NoError(t, s.Complete(ctx, key, "fp1", StoredResponse{Status: 201, Body: []byte(`{"id":"1"}`)}))
	state, resp, err = s.Begin(ctx, key, "fp1")
	require.NoError(t, err)
	assert.Equal(t, IdemDone, state)
	require.NotNil(t, resp)
	assert.Equal(t, 201, resp.Status)
	assert.JSONEq(t, `{"id":"1"}`, string(resp.Body))
	assert.Equal(t, time.Hour, mr.TTL(key))

	require.NoError(t, s.Abandon(ctx, key))
	state, _, err = s.Begin(ctx, key, "fp1")
	require.NoError(t, err)
	assert.Equal(t, IdemStarted, state)
}

func TestIdempotencyKeyReusedForOtherRequest(t *testing.T) {
	_, rdb := newRedis(t)
	s := NewIdempotencyStore(rdb, time.Minute, time.Hour)
	ctx := context.Background()
	key := KeyIdemBooking("shared")

	state, _, err := s.Begin(ctx, key, "fp1")
	require.NoError(t, err)
	require.Equal(t, IdemStarted, state)

	state, _, err = s.Begin(ctx, key, "fp2")
	require.NoError(t, err)
	assert.Equal(t, IdemMismatch, state, "pending")

	require.NoError(t, s.Complete(ctx, key, "fp1", StoredResponse{Status: 201, Body: []byte(`{}`)}))
	state, resp, err := s.Begin(ctx, key, "fp2")
	require.NoError(t, err)
	assert.Equal(t, IdemMismatch, state, "done")
	assert.Nil(t, resp)
}

func TestIdempotencyPendingExpires(t *testing.T) {
	mr, rdb := newRedis(t)
	s := NewIdempotencyStore(rdb, time.Minute, time.Hour)
	ctx := context.Background()
	key := KeyIdemBooking("crashed")

	state, _, err := s.Begin(ctx, key, "fp")
	require.NoError(t, err)
	require.Equal(t, IdemStarted, state)

	mr.FastForward(2 * time.Minute)

	state, _, err = s.Begin(ctx, key, "fp")
	require.NoError(t, err)
	assert.Equal(t, IdemStarted, state, "an abandoned pending marker frees the key")
}

func TestBookingLimiter(t *testing.T) {
	_, rdb := newRedis(t)
	l := NewBookingLimiter(rdb, 2, time.Minute)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	d, err := l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, Decision{Allowed: true, Used: 1, Remaining: 1}, d)

	now = now.Add(10 * time.Second)
	d, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, Decision{Allowed: true, Used: 2, Remaining: 0}, d)

	now = now.Add(10 * time.Second)
	d, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, int64(2), d.Used, "rejected attempts are not counted")
	assert.Equal(t, 40*time.Second, d.RetryAfter)

	d, err = l.Allow(ctx, "ip:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "limits are per client")

	// The first attempt leaves the window.
	now = now.Add(41 * time.Second)
	d, err = l.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(2), d.Used)
}

func TestAvailabilityPubSub(t *testing.T) {
	_, rdb := newRedis(t)
	ps := NewAvailabilityPubSub(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	got := make(chan int64, 1)
	done := make(chan error, 1)
	go func() {
		done <- ps.Subscribe(ctx, ready, func(ctx context.Context, vendorID int64) {
			got <- vendorID
		})
	}()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription never became ready")
	}

	require.NoError(t, ps.PublishChanged(context.Background(), 42, 9))

	select {
	case v := <-got:
		assert.Equal(t, int64(42), v)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
