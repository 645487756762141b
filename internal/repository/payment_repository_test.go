package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
)

func TestPaymentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(1, 1))

	payment := &models.Payment{StudentID: "s1", Amount: 3000, Date: time.Now(), Mode: models.PaymentCash}
	require.NoError(t, repo.Create(context.Background(), payment))
	assert.NotEmpty(t, payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListAllForStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "amount", "date", "mode", "transaction_ref", "note", "created_at", "student_name", "roll_number"}).
		AddRow("p1", "s1", 3000.0, now, "CASH", nil, nil, now, "Asha", "KPCI-2024-1234").
		AddRow("p2", "s1", 2000.0, now, "ONLINE", "UPI-77", nil, now, "Asha", "KPCI-2024-1234")
	mock.ExpectQuery(sqlLike("FROM payments p JOIN students s", "WHERE p.student_id = $1 ORDER BY p.date DESC")).
		WithArgs("s1").
		WillReturnRows(rows)

	payments, err := repo.ListAll(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "UPI-77", *payments[1].TransactionRef)
	assert.Equal(t, "KPCI-2024-1234", payments[0].RollNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListPage(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	mock.ExpectQuery(sqlLike("FROM payments p JOIN students s", "ORDER BY p.date DESC, p.created_at DESC LIMIT 20 OFFSET 40")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "amount", "date", "mode", "transaction_ref", "note", "created_at", "student_name", "roll_number"}).
			AddRow("p41", "s9", 500.0, now, "CASH", nil, nil, now, "Kiran", "KPCI-2024-0009"))
	mock.ExpectQuery(sqlLike("SELECT COUNT(*) FROM payments p")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	payments, total, err := repo.List(context.Background(), "", 3, 20)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 41, total)
	assert.Equal(t, "Kiran", payments[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
