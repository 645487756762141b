package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/institute-api/internal/models"
)

// GalleryRepository stores gallery images.
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository constructs the repository.
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// List returns images by display order, newest first within the same order.
func (r *GalleryRepository) List(ctx context.Context) ([]models.GalleryImage, error) {
	const query = `SELECT id, url, caption, category, sort_order, created_at FROM gallery_images
        ORDER BY sort_order ASC, created_at DESC`
	var images []models.GalleryImage
	if err := r.db.SelectContext(ctx, &images, query); err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

// Create inserts an image.
func (r *GalleryRepository) Create(ctx context.Context, image *models.GalleryImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO gallery_images (id, url, caption, category, sort_order, created_at)
        VALUES (:id, :url, :caption, :category, :sort_order, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, image); err != nil {
		return writeError("create gallery image", err)
	}
	return nil
}

// Delete removes an image record. The stored file is left in place.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM gallery_images WHERE id = $1", id)
	if err != nil {
		return writeError("delete gallery image", err)
	}
	return requireAffected(res)
}
