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

const adminUserColumns = `id, email, password_hash, name, role, active, last_login, created_at, updated_at`

// AdminUserRepository provides database access for staff accounts.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new instance of AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// FindByEmail returns an admin by email address.
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.GetContext(ctx, &user, "SELECT "+adminUserColumns+" FROM admin_users WHERE LOWER(email) = LOWER($1) LIMIT 1", email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &user, nil
}

// FindByID returns an admin by identifier.
func (r *AdminUserRepository) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.GetContext(ctx, &user, "SELECT "+adminUserColumns+" FROM admin_users WHERE id = $1 LIMIT 1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &user, nil
}

// UpdateLastLogin records the time of a successful login.
func (r *AdminUserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE admin_users SET last_login = $2, updated_at = $2 WHERE id = $1", id, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// EnsureExists inserts the admin unless the email is already registered.
// It reports whether a row was created.
func (r *AdminUserRepository) EnsureExists(ctx context.Context, user *models.AdminUser) (bool, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	const query = `INSERT INTO admin_users (id, email, password_hash, name, role, active, created_at, updated_at)
        VALUES (:id, :email, :password_hash, :name, :role, :active, :created_at, :updated_at)
        ON CONFLICT (email) DO NOTHING`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return false, fmt.Errorf("ensure admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensure admin rows: %w", err)
	}
	return n > 0, nil
}
