package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// DashboardRepository computes admin dashboard aggregates.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns every dashboard figure in one round trip. Fee totals include
// payments dated on or after since.
func (r *DashboardRepository) Counts(ctx context.Context, since time.Time) (*models.DashboardCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS total_students,
        (SELECT COUNT(*) FROM students WHERE status = 'ACTIVE') AS active_students,
        (SELECT COUNT(*) FROM students WHERE status = 'COMPLETED') AS completed_students,
        (SELECT COUNT(*) FROM courses WHERE is_active = TRUE) AS active_courses,
        (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE date >= $1) AS month_fees,
        (SELECT COUNT(*) FROM certificates WHERE is_issued = TRUE) AS issued_certificates,
        (SELECT COUNT(*) FROM enquiries WHERE is_read = FALSE) AS unread_enquiries`
	var counts models.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query, since); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &counts, nil
}

// Ping verifies the database connection for the readiness check.
func (r *DashboardRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
