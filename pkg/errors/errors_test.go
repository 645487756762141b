package errors

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknown(t *testing.T) {
	err := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestFromErrorKeepsTyped(t *testing.T) {
	restricted := Clone(ErrAccessRestricted, "")
	wrapped := fmt.Errorf("verify: %w", restricted)
	assert.Same(t, restricted, FromError(wrapped))
}

func TestClonedSentinelMatchesByCode(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAccessRestricted))
	assert.Equal(t, "student not found", err.Error())
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestValidationHelper(t *testing.T) {
	err := Validation(errors.New("name missing"), "invalid enquiry payload")
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "invalid enquiry payload: name missing", err.Error())
}
