package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgresrepo "github.com/kirinyoku/wedgo/internal/repository/postgres"
)

// ErrTooManyRetries wraps the last abort once DoRetry gives up.
var ErrTooManyRetries = errors.New("uow: transaction retries exhausted")

// AfterCommit runs once the transaction has committed.
type AfterCommit func(ctx context.Context)

// TxFunc is the body of a unit of work. Hooks registered through after run only
// if the transaction commits.
type TxFunc func(ctx context.Context, tx postgresrepo.DB, after func(AfterCommit)) error

type UoW struct {
	store *postgresrepo.Store
}

func NewUoW(store *postgresrepo.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn in a serializable read-write transaction.
func (u *UoW) Do(ctx context.Context, fn TxFunc) error {
	return u.DoWithOpts(ctx, nil, fn)
}

// DoWithOpts is Do with explicit transaction options. Hooks run in registration
// order, detached from ctx cancellation so a client hanging up after commit
// does not skip cache invalidation.
func (u *UoW) DoWithOpts(ctx context.Context, opts *pgx.TxOptions, fn TxFunc) error {
	var hooks []AfterCommit

	err := u.store.RunTx(ctx, opts, func(ctx context.Context, tx postgresrepo.DB) error {
		return fn(ctx, tx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	hookCtx := context.WithoutCancel(ctx)
	for _, h := range hooks {
		h(hookCtx)
	}

	return nil
}

// DoRetry is Do rerun, up to attempts times, while the transaction aborts
// with a serialization failure or deadlock. Hooks registered by an aborted
// attempt are dropped with it.
func (u *UoW) DoRetry(ctx context.Context, attempts int, fn TxFunc) error {
	var err error
	for range max(attempts, 1) {
		err = u.Do(ctx, fn)
		if err == nil || !postgresrepo.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrTooManyRetries, err)
}
