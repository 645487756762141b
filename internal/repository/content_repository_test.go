package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
)

func TestContentRepositoryAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectQuery(sqlLike("SELECT key, value, updated_at FROM site_content ORDER BY key ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("hero_title", "Learn computers", time.Now()))

	entries, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hero_title", entries[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryBulkUpsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO site_content").WithArgs("hero_title", "Learn", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO site_content").WithArgs("phone", "12345", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.BulkUpsert(context.Background(), []models.SiteContent{{Key: "hero_title", Value: "Learn"}, {Key: "phone", Value: "12345"}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepositoryBulkUpsertRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO site_content").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.BulkUpsert(context.Background(), []models.SiteContent{{Key: "hero_title", Value: "Learn"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
