package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

const studentSelect = `SELECT s.id, s.roll_number, s.name, s.father_name, s.mother_name, s.phone, s.email, s.address, s.dob, s.photo_url,
        s.enrollment_date, s.course_id, s.batch_id, s.total_fees, s.status, s.is_blocked, s.verification_enabled, s.created_at, s.updated_at,
        c.name AS course_name, c.duration AS course_duration, b.name AS batch_name, b.timing AS batch_timing
        FROM students s
        JOIN courses c ON c.id = s.course_id
        LEFT JOIN batches b ON b.id = s.batch_id`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters, newest first.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithCourse, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Search != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(s.name ILIKE $%d OR s.roll_number ILIKE $%d OR s.phone ILIKE $%d)", idx, idx, idx))
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("s.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	if size > 100 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("%s%s ORDER BY s.created_at DESC LIMIT %d OFFSET %d", studentSelect, where, size, offset)
	var students []models.StudentWithCourse
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students s"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student with course and batch names.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentWithCourse, error) {
	var student models.StudentWithCourse
	if err := r.db.GetContext(ctx, &student, studentSelect+" WHERE s.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// FindByRollNumber fetches a student by the exact roll number.
func (r *StudentRepository) FindByRollNumber(ctx context.Context, roll string) (*models.StudentWithCourse, error) {
	var student models.StudentWithCourse
	if err := r.db.GetContext(ctx, &student, studentSelect+" WHERE s.roll_number = $1", roll); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by roll number: %w", err)
	}
	return &student, nil
}

// ExistsByRollNumber reports whether the roll number is already taken.
func (r *StudentRepository) ExistsByRollNumber(ctx context.Context, roll string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE roll_number = $1 LIMIT 1", roll); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check roll number: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, roll_number, name, father_name, mother_name, phone, email, address, dob, photo_url,
        enrollment_date, course_id, batch_id, total_fees, status, is_blocked, verification_enabled, created_at, updated_at)
        VALUES (:id, :roll_number, :name, :father_name, :mother_name, :phone, :email, :address, :dob, :photo_url,
        :enrollment_date, :course_id, :batch_id, :total_fees, :status, :is_blocked, :verification_enabled, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return writeError("create student", err)
	}
	return nil
}

// Update overwrites the mutable columns of a student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, father_name = :father_name, mother_name = :mother_name, phone = :phone,
        email = :email, address = :address, dob = :dob, photo_url = :photo_url, enrollment_date = :enrollment_date,
        course_id = :course_id, batch_id = :batch_id, total_fees = :total_fees, status = :status, is_blocked = :is_blocked,
        verification_enabled = :verification_enabled, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return writeError("update student", err)
	}
	return requireAffected(res)
}

// Delete hard-deletes a student; dependent rows cascade.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireAffected(res)
}

// requireAffected maps a zero row count to sql.ErrNoRows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
