package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
)

func TestEnquiryRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectExec("INSERT INTO enquiries").
		WithArgs(sqlmock.AnyArg(), "Ravi", "9000000000", nil, nil, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	enquiry := &models.Enquiry{Name: "Ravi", Phone: "9000000000"}
	require.NoError(t, repo.Create(context.Background(), enquiry))
	assert.NotEmpty(t, enquiry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryListUnread(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectQuery(sqlLike("FROM enquiries WHERE is_read = FALSE", "ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "course", "message", "is_read", "created_at"}).
			AddRow("e1", "Ravi", "9000000000", "DCA", nil, false, time.Now()))
	mock.ExpectQuery(sqlLike("SELECT COUNT(*) FROM enquiries WHERE is_read = FALSE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows, total, err := repo.List(context.Background(), true, 1, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, total)
	assert.False(t, rows[0].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnquiryRepositoryMarkReadMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnquiryRepository(db)

	mock.ExpectExec(sqlLike("UPDATE enquiries SET is_read = TRUE WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkRead(context.Background(), "missing"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
