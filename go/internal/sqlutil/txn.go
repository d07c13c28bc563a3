package sqlutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner starts transactions. *pgxpool.Pool and *pgx.Conn satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Run executes fn inside a pgx.Tx.
// If fn returns an error the tx rolls back, else it commits.
func Run[Q any, T any](
	ctx context.Context,
	db Beginner,
	newQueries func(pgx.Tx) Q,
	fn func(q Q) (T, error),
) (_ T, txErr error) {
	var zero T

	tx, err := db.Begin(ctx) // BEGIN
	if err != nil {
		return zero, fmt.Errorf("tx.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx) // ROLLBACK
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(newQueries(tx)) // bind queries to this tx
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil { // COMMIT
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}
	return result, nil
}
