package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type galleryRepository interface {
	List(ctx context.Context) ([]models.GalleryImage, error)
	Create(ctx context.Context, image *models.GalleryImage) error
	Delete(ctx context.Context, id string) error
}

// GalleryService manages the public photo gallery.
type GalleryService struct {
	repo      galleryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGalleryService constructs the gallery service.
func NewGalleryService(repo galleryRepository, validate *validator.Validate, logger *zap.Logger) *GalleryService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{repo: repo, validator: validate, logger: logger}
}

// List returns the gallery images and their categories.
func (s *GalleryService) List(ctx context.Context) (*dto.GalleryView, error) {
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list gallery images")
	}
	view := &dto.GalleryView{Categories: []string{}, Images: images}
	if view.Images == nil {
		view.Images = []models.GalleryImage{}
	}
	seen := make(map[string]struct{})
	for _, img := range view.Images {
		if img.Category == nil || *img.Category == "" {
			continue
		}
		if _, ok := seen[*img.Category]; ok {
			continue
		}
		seen[*img.Category] = struct{}{}
		view.Categories = append(view.Categories, *img.Category)
	}
	return view, nil
}

// Create registers an image URL, usually one returned by the upload endpoint.
func (s *GalleryService) Create(ctx context.Context, req dto.CreateGalleryImageRequest) (*models.GalleryImage, error) {
	req.URL = strings.TrimSpace(req.URL)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid gallery image payload")
	}
	if !strings.HasPrefix(req.URL, "https://") && !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "/") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "url must be absolute or site relative")
	}
	image := &models.GalleryImage{
		URL:       req.URL,
		Caption:   optionalPtr(req.Caption),
		Category:  optionalPtr(req.Category),
		SortOrder: req.Order,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, appErrors.Internal(err, "failed to save gallery image")
	}
	s.logger.Info("gallery image added", zap.String("id", image.ID))
	return image, nil
}

// Delete removes an image from the gallery.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "gallery image not found")
		}
		return appErrors.Internal(err, "failed to delete gallery image")
	}
	return nil
}
