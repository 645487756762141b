package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

const maxContentKeyLength = 100

type contentRepository interface {
	All(ctx context.Context) ([]models.SiteContent, error)
	BulkUpsert(ctx context.Context, entries []models.SiteContent) error
}

// ContentService stores editable site copy as key/value pairs.
type ContentService struct {
	repo   contentRepository
	logger *zap.Logger
}

// NewContentService constructs the content service.
func NewContentService(repo contentRepository, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, logger: logger}
}

// All returns every content entry keyed by its key.
func (s *ContentService) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load site content")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Update upserts all given entries in one transaction.
func (s *ContentService) Update(ctx context.Context, entries map[string]string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no content entries supplied")
	}
	rows := make([]models.SiteContent, 0, len(entries))
	for key, value := range entries {
		key = strings.TrimSpace(key)
		if key == "" || len(key) > maxContentKeyLength {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("content key must be 1-%d characters", maxContentKeyLength))
		}
		rows = append(rows, models.SiteContent{Key: key, Value: value})
	}
	if err := s.repo.BulkUpsert(ctx, rows); err != nil {
		return nil, appErrors.Internal(err, "failed to save site content")
	}
	return s.All(ctx)
}
