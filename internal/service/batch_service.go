package service

import (
	"context"
	"strings"

	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type batchRepository interface {
	List(ctx context.Context, courseID string) ([]models.Batch, error)
}

// BatchService lists course cohorts.
type BatchService struct {
	repo batchRepository
}

func NewBatchService(repo batchRepository) *BatchService {
	return &BatchService{repo: repo}
}

// List returns batches, optionally restricted to one course.
func (s *BatchService) List(ctx context.Context, courseID string) ([]models.Batch, error) {
	rows, err := s.repo.List(ctx, strings.TrimSpace(courseID))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list batches")
	}
	if rows == nil {
		rows = []models.Batch{}
	}
	return rows, nil
}
