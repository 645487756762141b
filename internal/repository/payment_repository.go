package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// PaymentRepository stores fee installments. Payments are never updated or deleted.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentSelect = `SELECT p.id, p.student_id, p.amount, p.date, p.mode, p.transaction_ref, p.note, p.created_at,
        s.name AS student_name, s.roll_number
        FROM payments p JOIN students s ON s.id = p.student_id`

func paymentWhere(studentID string) (string, []interface{}) {
	if studentID == "" {
		return "", nil
	}
	return " WHERE p.student_id = $1", []interface{}{studentID}
}

// List returns one page of payments newest first with student identity, plus
// the total count matching the filter.
func (r *PaymentRepository) List(ctx context.Context, studentID string, page, size int) ([]models.PaymentWithStudent, int, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	where, args := paymentWhere(studentID)
	query := fmt.Sprintf("%s%s ORDER BY p.date DESC, p.created_at DESC LIMIT %d OFFSET %d", paymentSelect, where, size, (page-1)*size)

	var payments []models.PaymentWithStudent
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM payments p"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}
	return payments, total, nil
}

// ListAll returns every matching payment for exports.
func (r *PaymentRepository) ListAll(ctx context.Context, studentID string) ([]models.PaymentWithStudent, error) {
	where, args := paymentWhere(studentID)
	var payments []models.PaymentWithStudent
	if err := r.db.SelectContext(ctx, &payments, paymentSelect+where+" ORDER BY p.date DESC, p.created_at DESC", args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// ListByStudent returns every payment made by a student.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	const query = `SELECT id, student_id, amount, date, mode, transaction_ref, note, created_at
        FROM payments WHERE student_id = $1 ORDER BY date DESC`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student payments: %w", err)
	}
	return payments, nil
}

// Create records a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO payments (id, student_id, amount, date, mode, transaction_ref, note, created_at)
        VALUES (:id, :student_id, :amount, :date, :mode, :transaction_ref, :note, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return writeError("create payment", err)
	}
	return nil
}
