package persistence

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/smbc/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes that mean a concurrent writer won
var conflictCodes = map[string]bool{
	"23505": true, // unique_violation
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

// classifyError maps driver errors into the domain error taxonomy.
// Domain errors pass through unchanged. Anything that is neither a conflict
// nor a missing row is reported as STORAGE_UNAVAILABLE with a generic message;
// the driver error is kept as the cause for logging only.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", op, err)
	if isConflict(err) {
		return shared.WrapDomainError(shared.CodeConcurrency, shared.ErrConcurrencyConflict.Message, cause)
	}
	return shared.WrapDomainError(shared.CodeStorageUnavailable, shared.ErrStorageUnavailable.Message, cause)
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return conflictCodes[pgErr.Code]
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return conflictCodes[string(pqErr.Code)]
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch {
		case liteErr.Code == sqlite3.ErrBusy, liteErr.Code == sqlite3.ErrLocked:
			return true
		case liteErr.ExtendedCode == sqlite3.ErrConstraintUnique, liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return true
		}
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
