package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/ecomstack/account-api/internal/store"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           pgUniqueViolationCode,
		ConstraintName: constraint,
		Message:        "duplicate key value violates unique constraint",
	}
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username constraint",
			err:  uniqueViolation(usernameUniqueConstraint),
			want: store.ErrUsernameExists,
		},
		{
			name: "email constraint",
			err:  uniqueViolation(emailUniqueConstraint),
			want: store.ErrEmailExists,
		},
		{
			name: "wrapped pg error",
			err:  fmt.Errorf("exec: %w", uniqueViolation(usernameUniqueConstraint)),
			want: store.ErrUsernameExists,
		},
		{
			name: "unrecognized unique constraint",
			err:  uniqueViolation("accounts_other_key"),
			want: store.ErrDuplicate,
		},
		{
			name: "non unique-violation pg error",
			err:  &pgconn.PgError{Code: "23503"},
			want: nil,
		},
		{
			name: "plain error",
			err:  assert.AnError,
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapUniqueViolation(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}
