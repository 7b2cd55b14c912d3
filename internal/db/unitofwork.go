package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// UnitOfWork groups history writes, such as recording a run and pruning
// old ones, into a single SQLite transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork on a history database.
type SQLiteUnitOfWork struct {
	db  *sql.DB
	log *zap.Logger
}

// UnitOfWorkOption configures a SQLiteUnitOfWork.
type UnitOfWorkOption func(*SQLiteUnitOfWork)

// WithTxLogger reports rollbacks, and failed rollbacks, to log.
func WithTxLogger(log *zap.Logger) UnitOfWorkOption {
	return func(u *SQLiteUnitOfWork) {
		if log != nil {
			u.log = log
		}
	}
}

// NewSQLiteUnitOfWork creates a UnitOfWork over the history database.
func NewSQLiteUnitOfWork(db *sql.DB, opts ...UnitOfWorkOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// WithinTx commits when fn returns nil. An error or a panic from fn rolls
// the transaction back; the panic is re-raised afterwards.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			u.rollback(tx, fmt.Errorf("panic: %v", p))
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := u.rollback(tx, err); rbErr != nil {
			return fmt.Errorf("rolling back history transaction: %v (cause: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history transaction: %w", err)
	}
	return nil
}

func (u *SQLiteUnitOfWork) rollback(tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil {
		u.log.Error("history rollback failed", zap.NamedError("cause", cause), zap.Error(err))
		return err
	}
	u.log.Debug("history transaction rolled back", zap.NamedError("cause", cause))
	return nil
}
