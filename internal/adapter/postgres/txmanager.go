package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager scopes repository calls to one transaction through the context.
type TxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager creates a TxManager whose transactions run at Read Committed.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// RunInTx calls fn with a context carrying the transaction. The transaction
// commits if fn returns nil and rolls back on an error or a panic, which is
// re-raised. A call made while ctx already carries a transaction joins it
// instead of opening a second one.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	var fnErr error
	err := pgx.BeginTxFunc(ctx, m.pool, m.opts, func(tx pgx.Tx) error {
		fnErr = fn(withTx(ctx, tx))
		return fnErr
	})
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	default:
		return fmt.Errorf("transaction: %w", err)
	}
}
