package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
)

var courseRowColumns = []string{"id", "name", "slug", "category", "duration", "fees", "description", "eligibility", "syllabus", "image_url", "is_active", "created_at", "updated_at"}

func TestCourseRepositoryListActiveByCreation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courseRowColumns).
		AddRow("c1", "DCA", "dca", "Diploma", "6 Months", 6000.0, nil, "10th Pass", "MS Office\nInternet", nil, true, now, now)
	mock.ExpectQuery(sqlLike("FROM courses WHERE is_active = TRUE ORDER BY created_at ASC LIMIT 6")).WillReturnRows(rows)

	courses, err := repo.List(context.Background(), models.CourseFilter{ActiveOnly: true, Order: models.CourseOrderCreated, Limit: 6})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "dca", courses[0].Slug)
	assert.Equal(t, "MS Office\nInternet", *courses[0].Syllabus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindBySlugMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(sqlLike("FROM courses WHERE slug = $1")).
		WithArgs("dca").
		WillReturnRows(sqlmock.NewRows(courseRowColumns))

	_, err := repo.FindBySlug(context.Background(), "dca")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryExistsBySlugExcludingSelf(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(sqlLike("SELECT 1 FROM courses WHERE slug = $1 AND id <> $2 LIMIT 1")).
		WithArgs("adca", "c2").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	taken, err := repo.ExistsBySlug(context.Background(), "adca", "c2")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("UPDATE courses SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Course{ID: "nope", Name: "DCA", Slug: "dca"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
