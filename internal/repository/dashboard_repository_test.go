package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(sqlLike("AS total_students", "FROM payments WHERE date >= $1", "AS unread_enquiries")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"total_students", "active_students", "completed_students", "active_courses", "month_fees", "issued_certificates", "unread_enquiries"}).
			AddRow(42, 30, 10, 8, 56000.0, 9, 3))

	counts, err := repo.Counts(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, 42, counts.TotalStudents)
	assert.Equal(t, 56000.0, counts.MonthFees)
	assert.Equal(t, 3, counts.UnreadEnquiries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
