package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error classification. The store's own
// constraints are the final arbiter for uniqueness; a violation detected here
// is translated into the matching Conflict domain error by the repositories.

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL unique_violation surfaces as SQLSTATE 23505.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23505") ||
		strings.Contains(errMsg, "duplicate key")
}

// uniqueViolationOn reports whether the violation names the given column's
// index, so duplicate username and duplicate email map to distinct conflicts.
func uniqueViolationOn(err error, column string) bool {
	return isUniqueConstraintViolation(err) &&
		strings.Contains(strings.ToLower(err.Error()), column)
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "23503")
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}
