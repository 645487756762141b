package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

const certificateColumns = `id, student_id, certificate_number, issue_date, is_issued, created_at, updated_at`

// CertificateRepository persists certificate issuance state.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository constructs the repository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// List returns certificates with student and course names, newest first.
func (r *CertificateRepository) List(ctx context.Context) ([]models.CertificateWithStudent, error) {
	const query = `SELECT ce.id, ce.student_id, ce.certificate_number, ce.issue_date, ce.is_issued, ce.created_at, ce.updated_at,
        s.name AS student_name, s.roll_number, c.name AS course_name
        FROM certificates ce
        JOIN students s ON s.id = ce.student_id
        JOIN courses c ON c.id = s.course_id
        ORDER BY ce.created_at DESC`
	var rows []models.CertificateWithStudent
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return rows, nil
}

// FindByID fetches a certificate by identifier.
func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.GetContext(ctx, &cert, "SELECT "+certificateColumns+" FROM certificates WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}
	return &cert, nil
}

// FindByStudent fetches the certificate of a student.
func (r *CertificateRepository) FindByStudent(ctx context.Context, studentID string) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.GetContext(ctx, &cert, "SELECT "+certificateColumns+" FROM certificates WHERE student_id = $1", studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student certificate: %w", err)
	}
	return &cert, nil
}

// Upsert creates the student's certificate or replaces its fields.
func (r *CertificateRepository) Upsert(ctx context.Context, cert *models.Certificate) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cert.UpdatedAt = now
	if cert.CreatedAt.IsZero() {
		cert.CreatedAt = now
	}
	const query = `INSERT INTO certificates (id, student_id, certificate_number, issue_date, is_issued, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (student_id)
DO UPDATE SET certificate_number = EXCLUDED.certificate_number, issue_date = EXCLUDED.issue_date,
              is_issued = EXCLUDED.is_issued, updated_at = EXCLUDED.updated_at
RETURNING ` + certificateColumns
	var stored models.Certificate
	if err := r.db.GetContext(ctx, &stored, query, cert.ID, cert.StudentID, cert.CertificateNumber, cert.IssueDate, cert.IsIssued, cert.CreatedAt, cert.UpdatedAt); err != nil {
		return writeError("upsert certificate", err)
	}
	*cert = stored
	return nil
}

// Update overwrites the mutable columns of a certificate.
func (r *CertificateRepository) Update(ctx context.Context, cert *models.Certificate) error {
	cert.UpdatedAt = time.Now().UTC()
	const query = `UPDATE certificates SET certificate_number = :certificate_number, issue_date = :issue_date,
        is_issued = :is_issued, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, cert)
	if err != nil {
		return writeError("update certificate", err)
	}
	return requireAffected(res)
}
