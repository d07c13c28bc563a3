package sqlutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: fmt.Errorf("q.GetGroup: %w", pgx.ErrNoRows), want: ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "participants_group_email_key"}, want: ErrUniqueViolation},
		{name: "cap trigger", err: &pgconn.PgError{Code: "23514", Message: "group 1 already has the maximum of 3 participants"}, want: ErrCapacityExceeded},
		{name: "other check violation", err: &pgconn.PgError{Code: "23514", ConstraintName: "cart_items_quantity_check"}, want: ErrCheckViolation},
		{name: "plain error", err: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.err)
			for _, sentinel := range []error{ErrNotFound, ErrUniqueViolation, ErrCapacityExceeded, ErrCheckViolation} {
				assert.Equal(t, sentinel == tt.want, errors.Is(got, sentinel), "sentinel %v", sentinel)
			}
		})
	}

	assert.NoError(t, Classify(nil))
}

func TestTimestamptzRoundTrip(t *testing.T) {
	assert.Nil(t, FromTimestamptz(ToTimestamptz(nil)))
}
