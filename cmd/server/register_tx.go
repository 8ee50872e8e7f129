package main

import (
	"context"
	"database/sql"
	"time"

	dErrors "bizcore/pkg/domain-errors"
	txcontext "bizcore/pkg/tx"
)

const defaultRegisterTxTimeout = 5 * time.Second

// registerPostgresTx is the transactional boundary for registration against
// PostgreSQL. The tenant and first-user inserts run in one database
// transaction carried through context; a failure rolls both back.
type registerPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newRegisterPostgresTx(db *sql.DB) *registerPostgresTx {
	return &registerPostgresTx{db: db}
}

func (t *registerPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, ok := txcontext.From(ctx); ok {
		return fn(ctx)
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultRegisterTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback after commit is no-op; error already captured
	}()

	txCtx := txcontext.WithTx(ctx, tx)
	if err := fn(txCtx); err != nil {
		return err
	}

	return tx.Commit()
}
