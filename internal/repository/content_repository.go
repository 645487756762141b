package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// ContentRepository persists editable site content blocks.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository constructs the repository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// All returns every content entry ordered by key.
func (r *ContentRepository) All(ctx context.Context) ([]models.SiteContent, error) {
	var entries []models.SiteContent
	if err := r.db.SelectContext(ctx, &entries, "SELECT key, value, updated_at FROM site_content ORDER BY key ASC"); err != nil {
		return nil, fmt.Errorf("list site content: %w", err)
	}
	return entries, nil
}

// BulkUpsert writes every entry inside one transaction.
func (r *ContentRepository) BulkUpsert(ctx context.Context, entries []models.SiteContent) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin site content tx: %w", err)
	}
	const query = `INSERT INTO site_content (key, value, updated_at)
VALUES (:key, :value, :updated_at)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for i := range entries {
		entries[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, entries[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert site content %q: %w", entries[i].Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit site content tx: %w", err)
	}
	return nil
}
