package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConflictCause tags a fatal validation rejection so the HTTP layer can pick
// a status code without parsing message text.
type ConflictCause string

const (
	CauseOverlap    ConflictCause = "overlap"
	CauseExclusion  ConflictCause = "exclusion"
	CauseValidation ConflictCause = "validation"
)

// ConflictError is a fatal shift-validation outcome. Writes must not proceed
// when one is returned.
type ConflictError struct {
	Cause   ConflictCause
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func overlapErrorf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Cause: CauseOverlap, Message: fmt.Sprintf(format, args...)}
}

func exclusionErrorf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Cause: CauseExclusion, Message: fmt.Sprintf(format, args...)}
}

func validationErrorf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Cause: CauseValidation, Message: fmt.Sprintf(format, args...)}
}

// PostgreSQL SQLSTATE codes the store backstop can raise behind the advisory
// checks.
const (
	pgExclusionViolation = "23P01"
	pgCheckViolation     = "23514"
)

// classifyStoreError maps constraint violations raised by the store into the
// same taxonomy as the advisory checks. Two concurrent writes can both pass
// the advisory pre-check; the loser's constraint violation must look like an
// ordinary conflict to the caller, not a storage failure.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return overlapErrorf("a shift with these details already exists")
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return validationErrorf("the referenced employee or child does not exist")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return overlapErrorf("an overlapping shift was created concurrently")
		case pgCheckViolation:
			return validationErrorf("the record violates a store constraint: %s", pgErr.ConstraintName)
		}
	}
	return err
}
