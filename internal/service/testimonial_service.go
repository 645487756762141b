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

type testimonialRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Testimonial, error)
	Create(ctx context.Context, t *models.Testimonial) error
	SetActive(ctx context.Context, id string, active bool) error
}

// TestimonialService manages quotes shown on the public site.
type TestimonialService struct {
	repo      testimonialRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestimonialService constructs the testimonial service.
func NewTestimonialService(repo testimonialRepository, validate *validator.Validate, logger *zap.Logger) *TestimonialService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{repo: repo, validator: validate, logger: logger}
}

func (s *TestimonialService) List(ctx context.Context, activeOnly bool) ([]models.Testimonial, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list testimonials")
	}
	if rows == nil {
		rows = []models.Testimonial{}
	}
	return rows, nil
}

func (s *TestimonialService) Create(ctx context.Context, req dto.CreateTestimonialRequest) (*models.Testimonial, error) {
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid testimonial payload")
	}
	t := &models.Testimonial{
		StudentName: req.StudentName,
		Course:      optionalPtr(req.Course),
		Message:     req.Message,
		IsActive:    true,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, appErrors.Internal(err, "failed to save testimonial")
	}
	return t, nil
}

func (s *TestimonialService) SetActive(ctx context.Context, id string, req dto.SetActiveRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "isActive is required")
	}
	if err := s.repo.SetActive(ctx, id, *req.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return appErrors.Internal(err, "failed to update testimonial")
	}
	return nil
}
