package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
)

func attendanceBatch() []models.Attendance {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return []models.Attendance{
		{StudentID: "s1", Date: day, Status: models.AttendancePresent},
		{StudentID: "s2", Date: day, Status: models.AttendanceAbsent},
		{StudentID: "s3", Date: day, Status: models.AttendanceLeave},
	}
}

func TestAttendanceRepositoryBulkUpsertCommits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	records := attendanceBatch()
	mock.ExpectBegin()
	for _, rec := range records {
		mock.ExpectExec(sqlLike("INSERT INTO attendance", "ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status")).
			WithArgs(sqlmock.AnyArg(), rec.StudentID, rec.Date, string(rec.Status), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.BulkUpsert(context.Background(), records))
	for _, rec := range records {
		assert.NotEmpty(t, rec.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryBulkUpsertRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO attendance").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO attendance").WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	err := repo.BulkUpsert(context.Background(), attendanceBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryBulkUpsertEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	require.NoError(t, NewAttendanceRepository(db).BulkUpsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	now := time.Now()
	mock.ExpectQuery(sqlLike("FROM attendance WHERE student_id = $1 ORDER BY date DESC")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "date", "status", "created_at"}).
			AddRow("a1", "s1", now, "PRESENT", now).
			AddRow("a2", "s1", now.AddDate(0, 0, -1), "ABSENT", now))

	rows, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.AttendanceAbsent, rows[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListPage(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(sqlLike("FROM attendance a JOIN students s", "WHERE a.student_id = $1", "ORDER BY a.date DESC, s.name ASC LIMIT 100 OFFSET 0")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "date", "status", "created_at", "student_name", "roll_number"}).
			AddRow("a1", "s1", day, "PRESENT", day, "Asha", "KPCI-2024-1234"))
	mock.ExpectQuery(sqlLike("SELECT COUNT(*) FROM attendance a WHERE a.student_id = $1")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows, total, err := repo.List(context.Background(), "s1", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.AttendancePresent, rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
