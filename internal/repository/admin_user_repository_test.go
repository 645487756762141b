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

func TestAdminUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(sqlLike("FROM admin_users WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("admin@kpci.edu.in").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "active", "last_login", "created_at", "updated_at"}).
			AddRow("u1", "admin@kpci.edu.in", "hash", "Admin", string(models.RoleSuperAdmin), true, nil, now, now))

	user, err := repo.FindByEmail(context.Background(), "admin@kpci.edu.in")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, user.Role)
	assert.Nil(t, user.LastLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUserRepositoryEnsureExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	mock.ExpectExec(sqlLike("INSERT INTO admin_users", "ON CONFLICT (email) DO NOTHING")).WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.EnsureExists(context.Background(), &models.AdminUser{Email: "admin@kpci.edu.in", PasswordHash: "hash", Name: "Admin", Role: models.RoleSuperAdmin, Active: true})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
