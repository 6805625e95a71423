package persistence

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/smbc/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not found", err: gorm.ErrRecordNotFound, want: shared.ErrNotFound},
		{name: "domain error passes through", err: shared.ErrInvalidState, want: shared.ErrInvalidState},
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, want: shared.ErrConcurrencyConflict},
		{name: "pgx serialization failure", err: &pgconn.PgError{Code: "40001"}, want: shared.ErrConcurrencyConflict},
		{name: "pgx deadlock", err: &pgconn.PgError{Code: "40P01"}, want: shared.ErrConcurrencyConflict},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, want: shared.ErrConcurrencyConflict},
		{name: "sqlite busy", err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: shared.ErrConcurrencyConflict},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: shared.ErrConcurrencyConflict},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: shared.ErrConcurrencyConflict},
		{name: "pgx admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: shared.ErrStorageUnavailable},
		{name: "anything else", err: errors.New("driver: bad connection"), want: shared.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError("op", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.NoError(t, classifyError("op", nil))
}

func TestClassifyError_HidesDriverDetails(t *testing.T) {
	err := classifyError("insert entries", &pgconn.PgError{Code: "08006", Message: "connection to 10.1.2.3 lost"})

	assert.Equal(t, shared.ErrStorageUnavailable.Message, err.Error())
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr), "driver error stays available as the cause")
}
