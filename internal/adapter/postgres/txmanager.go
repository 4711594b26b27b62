package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxManager runs callbacks inside a transaction carried by the context.
// Repositories pick the transaction up through QuerierFromCtx. Nested
// RunInTx calls open a second, independent transaction.
type TxManager struct {
	db   DB
	opts pgx.TxOptions
}

// TxOption configures a TxManager.
type TxOption func(*TxManager)

// WithIsoLevel sets the isolation level of every transaction the manager
// opens. The zero value keeps the server default (read committed).
func WithIsoLevel(level pgx.TxIsoLevel) TxOption {
	return func(m *TxManager) { m.opts.IsoLevel = level }
}

// NewTxManager creates a new TxManager.
func NewTxManager(db DB, opts ...TxOption) *TxManager {
	m := &TxManager{db: db}
	for _, o := range opts {
		o(m)
	}
	return m
}

// RunInTx executes fn within a transaction. It commits when fn returns nil
// and rolls back otherwise. A panic in fn rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	committed = true
	if err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
