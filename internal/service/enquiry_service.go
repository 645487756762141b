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

type enquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	List(ctx context.Context, unreadOnly bool, page, size int) ([]models.Enquiry, int, error)
	MarkRead(ctx context.Context, id string) error
}

type enquiryMetrics interface {
	RecordEnquiry()
}

// EnquiryService accepts admission enquiries from the public site.
type EnquiryService struct {
	repo      enquiryRepository
	cache     cacheInvalidator
	metrics   enquiryMetrics
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnquiryService constructs the enquiry service.
func NewEnquiryService(repo enquiryRepository, cache cacheInvalidator, metrics enquiryMetrics, validate *validator.Validate, logger *zap.Logger) *EnquiryService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Submit stores a new unread enquiry. Name and phone are required after trimming.
func (s *EnquiryService) Submit(ctx context.Context, req dto.CreateEnquiryRequest) (*models.Enquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "name and phone are required")
	}

	enquiry := &models.Enquiry{
		Name:    req.Name,
		Phone:   req.Phone,
		Course:  optional(req.Course),
		Message: optional(req.Message),
		IsRead:  false,
	}
	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, appErrors.Internal(err, "failed to save enquiry")
	}
	if s.metrics != nil {
		s.metrics.RecordEnquiry()
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	return enquiry, nil
}

// List returns enquiries newest first, optionally only unread ones.
func (s *EnquiryService) List(ctx context.Context, unreadOnly bool, page, size int) ([]models.Enquiry, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	rows, total, err := s.repo.List(ctx, unreadOnly, page, size)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list enquiries")
	}
	if rows == nil {
		rows = []models.Enquiry{}
	}
	return rows, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// MarkRead flags an enquiry as handled.
func (s *EnquiryService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return appErrors.Internal(err, "failed to update enquiry")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	return nil
}
