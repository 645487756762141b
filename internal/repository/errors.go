package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes mapped to repository sentinels.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var (
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey reports a foreign key violation: a missing parent on insert
	// or a still referenced row on delete.
	ErrForeignKey = errors.New("foreign key violation")
)

// writeError wraps err with op and tags constraint violations with a sentinel.
func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrDuplicate, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrForeignKey, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
