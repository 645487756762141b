package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// AttendanceRepository handles persistence for daily attendance marks.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns one page of attendance marks newest first, optionally for one
// student, plus the total count matching the filter.
func (r *AttendanceRepository) List(ctx context.Context, studentID string, page, size int) ([]models.AttendanceWithStudent, int, error) {
	where := ""
	var args []interface{}
	if studentID != "" {
		where = " WHERE a.student_id = $1"
		args = append(args, studentID)
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 100
	}
	query := fmt.Sprintf(`SELECT a.id, a.student_id, a.date, a.status, a.created_at, s.name AS student_name, s.roll_number
        FROM attendance a JOIN students s ON s.id = a.student_id%s
        ORDER BY a.date DESC, s.name ASC LIMIT %d OFFSET %d`, where, size, (page-1)*size)

	var rows []models.AttendanceWithStudent
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM attendance a"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}
	return rows, total, nil
}

// ListByStudent returns every mark recorded for a student.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	const query = `SELECT id, student_id, date, status, created_at FROM attendance WHERE student_id = $1 ORDER BY date DESC`
	var rows []models.Attendance
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return rows, nil
}

// BulkUpsert writes all records in one transaction. A mark for an existing
// (student, date) pair replaces its status. Any failure rolls back every row.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, records []models.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk attendance: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO attendance (id, student_id, date, status, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status`
	now := time.Now().UTC()
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if _, err := tx.ExecContext(ctx, query, rec.ID, rec.StudentID, rec.Date, string(rec.Status), rec.CreatedAt); err != nil {
			return writeError(fmt.Sprintf("bulk upsert attendance for student %s on %s", rec.StudentID, rec.Date.Format("2006-01-02")), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk attendance: %w", err)
	}
	commit = true
	return nil
}
