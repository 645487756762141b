package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWriteErrorTagsConstraintViolations(t *testing.T) {
	dup := writeError("create course", &pq.Error{Code: "23505", Constraint: "courses_slug_key"})
	assert.ErrorIs(t, dup, ErrDuplicate)
	assert.Contains(t, dup.Error(), "courses_slug_key")

	missing := writeError("create payment", &pq.Error{Code: "23503"})
	assert.ErrorIs(t, missing, ErrForeignKey)

	plain := writeError("create payment", errors.New("conn reset"))
	assert.False(t, errors.Is(plain, ErrDuplicate))
	assert.EqualError(t, plain, "create payment: conn reset")
}
