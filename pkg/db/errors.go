package db

import (
	"strings"

	pkgerrors "github.com/eonite/portal-backend/pkg/errors"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation. When
// constraintName is set, the violation must reference that constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if pg, ok := pkgerrors.PostgresError(err); ok {
		if pg.Code != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pg.Constraint == constraintName
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return true
	}
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
