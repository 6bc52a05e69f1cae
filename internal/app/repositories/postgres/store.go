// Package postgres implements the relational store on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/pkg/logger"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx so every query method
// works inside and outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repositories.Store over PostgreSQL
type Store struct {
	db   dbtx
	pool *pgxpool.Pool
}

var _ repositories.Store = (*Store)(nil)

// New creates a Store on a connection pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

// WithTx runs fn against a store bound to a single transaction, committing
// on success and rolling back on error or panic. Nested calls reuse the
// enclosing transaction.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	if s.pool == nil {
		return fn(ctx, s)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, &Store{db: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
