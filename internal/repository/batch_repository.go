package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// BatchRepository stores course batches.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository constructs a BatchRepository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// List returns batches ordered by name, optionally for one course.
func (r *BatchRepository) List(ctx context.Context, courseID string) ([]models.Batch, error) {
	query := `SELECT b.id, b.course_id, c.name AS course_name, b.name, b.timing, b.capacity, b.start_date, b.end_date, b.created_at
        FROM batches b JOIN courses c ON c.id = b.course_id`
	var args []interface{}
	if courseID != "" {
		query += " WHERE b.course_id = $1"
		args = append(args, courseID)
	}
	query += " ORDER BY b.name ASC"

	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}

// Create inserts a batch unless the course already has one with that name.
// It reports whether a row was created.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) (bool, error) {
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO batches (id, course_id, name, timing, capacity, start_date, end_date, created_at)
        VALUES (:id, :course_id, :name, :timing, :capacity, :start_date, :end_date, :created_at)
        ON CONFLICT (course_id, name) DO NOTHING`
	res, err := r.db.NamedExecContext(ctx, query, batch)
	if err != nil {
		return false, writeError("create batch", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create batch rows: %w", err)
	}
	return n > 0, nil
}
