package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// TestimonialRepository stores testimonials.
type TestimonialRepository struct {
	db *sqlx.DB
}

// NewTestimonialRepository constructs the repository.
func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// List returns testimonials newest first.
func (r *TestimonialRepository) List(ctx context.Context, activeOnly bool) ([]models.Testimonial, error) {
	query := "SELECT id, student_name, course, message, is_active, created_at FROM testimonials"
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"
	var rows []models.Testimonial
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return rows, nil
}

// Create inserts a testimonial.
func (r *TestimonialRepository) Create(ctx context.Context, t *models.Testimonial) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO testimonials (id, student_name, course, message, is_active, created_at)
        VALUES (:id, :student_name, :course, :message, :is_active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return nil
}

// SetActive toggles whether a testimonial is shown publicly.
func (r *TestimonialRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE testimonials SET is_active = $2 WHERE id = $1", id, active)
	if err != nil {
		return fmt.Errorf("set testimonial active: %w", err)
	}
	return requireAffected(res)
}
