package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
)

func TestCertificateRepositoryUpsertReturnsStoredRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCertificateRepository(db)

	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	issued := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(sqlLike("INSERT INTO certificates", "ON CONFLICT (student_id)", "RETURNING id, student_id")).
		WithArgs(sqlmock.AnyArg(), "s1", "CERT-001", issued, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "certificate_number", "issue_date", "is_issued", "created_at", "updated_at"}).
			AddRow("existing", "s1", "CERT-001", issued, true, created, time.Now()))

	cert := &models.Certificate{StudentID: "s1", CertificateNumber: strPtr("CERT-001"), IssueDate: &issued, IsIssued: true}
	require.NoError(t, repo.Upsert(context.Background(), cert))
	assert.Equal(t, "existing", cert.ID)
	assert.Equal(t, created, cert.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateRepositoryUpdateTagsDuplicateNumber(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCertificateRepository(db)

	mock.ExpectExec(sqlLike("UPDATE certificates SET certificate_number")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "certificates_certificate_number_key"})

	err := repo.Update(context.Background(), &models.Certificate{ID: "c1", CertificateNumber: strPtr("CERT-001")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}
