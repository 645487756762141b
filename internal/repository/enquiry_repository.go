package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// EnquiryRepository stores admission enquiries.
type EnquiryRepository struct {
	db *sqlx.DB
}

// NewEnquiryRepository constructs the repository.
func NewEnquiryRepository(db *sqlx.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

// Create inserts an enquiry.
func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO enquiries (id, name, phone, course, message, is_read, created_at)
        VALUES (:id, :name, :phone, :course, :message, :is_read, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enquiry); err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

// List returns enquiries newest first with the total count.
func (r *EnquiryRepository) List(ctx context.Context, unreadOnly bool, page, size int) ([]models.Enquiry, int, error) {
	where := ""
	if unreadOnly {
		where = " WHERE is_read = FALSE"
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	query := fmt.Sprintf(`SELECT id, name, phone, course, message, is_read, created_at FROM enquiries%s
        ORDER BY created_at DESC LIMIT %d OFFSET %d`, where, size, (page-1)*size)

	var enquiries []models.Enquiry
	if err := r.db.SelectContext(ctx, &enquiries, query); err != nil {
		return nil, 0, fmt.Errorf("list enquiries: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM enquiries"+where); err != nil {
		return nil, 0, fmt.Errorf("count enquiries: %w", err)
	}
	return enquiries, total, nil
}

// MarkRead flags an enquiry as read.
func (r *EnquiryRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE enquiries SET is_read = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("mark enquiry read: %w", err)
	}
	return requireAffected(res)
}
