package sqlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store-level sentinel errors. Repositories wrap driver errors with these so
// callers can branch with errors.Is without importing the driver.
var (
	ErrNotFound         = errors.New("row not found")
	ErrUniqueViolation  = errors.New("unique constraint violation")
	ErrCapacityExceeded = errors.New("participant capacity exceeded")
	ErrCheckViolation   = errors.New("check constraint violation")
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"

	capacityMessage = "maximum of 3 participants"
)

// Classify tags a driver error with the matching sentinel, keeping the original
// error in the chain. Unrecognized errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	case pgErr.Code == pgCheckViolation && strings.Contains(pgErr.Message, capacityMessage):
		return fmt.Errorf("%w: %w", ErrCapacityExceeded, err)
	case pgErr.Code == pgCheckViolation:
		return fmt.Errorf("%w: %w", ErrCheckViolation, err)
	}
	return err
}
