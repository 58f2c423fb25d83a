package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyIdemBooking scopes a client supplied Idempotency-Key to booking creation.
func KeyIdemBooking(clientKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%s", ns, clientKey)
}

type IdemState int

const (
	// IdemStarted means the caller now owns the key and must run the request.
	IdemStarted IdemState = iota
	// IdemInFlight means another request with the key has not finished.
	IdemInFlight
	// IdemDone means a response is stored and should be replayed.
	IdemDone
	// IdemMismatch means the key was first used for a different request.
	IdemMismatch
)

// StoredResponse is the reply replayed for a repeated key.
type StoredResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type storedRecord struct {
	Fingerprint string `json:"fingerprint"`
	StoredResponse
}

const (
	idemPending = "pending:"
	idemDone    = "done:"
)

// Claims the key unless it exists; returns the existing value otherwise.
const luaIdemBegin = `
if redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2]) then
  return false
end
return redis.call('GET', KEYS[1])
`

// IdempotencyStore marks a key pending while its request runs and keeps the
// finished response for replay until retention expires.
type IdempotencyStore struct {
	rdb        *redis.Client
	pendingFor time.Duration
	retention  time.Duration
	begin      *redis.Script
}

func NewIdempotencyStore(rdb *redis.Client, pendingFor, retention time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		rdb:        rdb,
		pendingFor: pendingFor,
		retention:  retention,
		begin:      redis.NewScript(luaIdemBegin),
	}
}

// Begin claims key for the request identified by fingerprint, or reports what
// an earlier request with the key left behind. The stored response is only
// set for IdemDone.
func (s *IdempotencyStore) Begin(ctx context.Context, key, fingerprint string) (IdemState, *StoredResponse, error) {
	const op = "redisrepo.IdempotencyStore.Begin"

	v, err := s.begin.Run(ctx, s.rdb, []string{key}, idemPending+fingerprint, s.pendingFor.Milliseconds()).Text()
	switch {
	case errors.Is(err, redis.Nil):
		return IdemStarted, nil, nil
	case err != nil:
		return 0, nil, fmt.Errorf("%s:%w", op, err)
	}

	if fp, pending := strings.CutPrefix(v, idemPending); pending {
		if fp != fingerprint {
			return IdemMismatch, nil, nil
		}
		return IdemInFlight, nil, nil
	}

	raw, done := strings.CutPrefix(v, idemDone)
	if !done {
		return 0, nil, fmt.Errorf("%s: unexpected value for %s", op, key)
	}

	var rec storedRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return 0, nil, fmt.Errorf("%s: corrupt stored response: %w", op, err)
	}
	if rec.Fingerprint != fingerprint {
		return IdemMismatch, nil, nil
	}
	return IdemDone, &rec.StoredResponse, nil
}

// Complete stores the response for key, replacing the pending marker.
func (s *IdempotencyStore) Complete(ctx context.Context, key, fingerprint string, resp StoredResponse) error {
	const op = "redisrepo.IdempotencyStore.Complete"

	b, err := json.Marshal(storedRecord{Fingerprint: fingerprint, StoredResponse: resp})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	if err := s.rdb.Set(ctx, key, idemDone+string(b), s.retention).Err(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	return nil
}

// Abandon frees key so the request can be retried with it.
func (s *IdempotencyStore) Abandon(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
