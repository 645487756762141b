package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

const defaultPopularLimit = 6

// placeholderModules is shown for courses without a syllabus.
var placeholderModules = []string{
	"Module 1: Introduction",
	"Module 2: Core Concepts",
	"Module 3: Advanced Topics",
	"Module 4: Practical Training",
}

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindBySlug(ctx context.Context, slug string) (*models.Course, error)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CourseService serves the public catalog and course administration.
type CourseService struct {
	repo      courseRepository
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ListActive returns active courses ordered by name.
func (s *CourseService) ListActive(ctx context.Context) ([]models.Course, error) {
	return s.list(ctx, models.CourseFilter{ActiveOnly: true, Order: models.CourseOrderName})
}

// Popular returns the first active courses in creation order.
func (s *CourseService) Popular(ctx context.Context, limit int) ([]models.Course, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return s.list(ctx, models.CourseFilter{ActiveOnly: true, Order: models.CourseOrderCreated, Limit: limit})
}

// ListAll returns every course for administration.
func (s *CourseService) ListAll(ctx context.Context) ([]models.Course, error) {
	return s.list(ctx, models.CourseFilter{Order: models.CourseOrderName})
}

// Catalog groups active courses by category; groups and courses are sorted by name.
func (s *CourseService) Catalog(ctx context.Context) ([]dto.CatalogGroup, error) {
	courses, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	groups := make([]dto.CatalogGroup, 0)
	for _, c := range courses {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, dto.CatalogGroup{Category: c.Category})
		}
		groups[i].Courses = append(groups[i].Courses, c)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Category < groups[b].Category })
	return groups, nil
}

// GetBySlug returns an active course with its syllabus split into modules.
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*dto.CourseDetail, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	course, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	if !course.IsActive {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return &dto.CourseDetail{Course: *course, Modules: SyllabusModules(course.Syllabus)}, nil
}

// SyllabusModules splits a newline separated syllabus, dropping blank lines.
// An empty syllabus yields the placeholder module list.
func SyllabusModules(syllabus *string) []string {
	var modules []string
	if syllabus != nil {
		for _, line := range strings.Split(*syllabus, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				modules = append(modules, line)
			}
		}
	}
	if len(modules) == 0 {
		return append([]string(nil), placeholderModules...)
	}
	return modules
}

// Get returns a course by id regardless of its active flag.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	return course, nil
}

// Create adds a course; slugs must be unique.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Category = strings.TrimSpace(req.Category)
	req.Duration = strings.TrimSpace(req.Duration)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid course payload")
	}
	if err := s.ensureSlugFree(ctx, req.Slug, ""); err != nil {
		return nil, err
	}
	course := &models.Course{
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		Duration:    req.Duration,
		Fees:        req.Fees,
		Description: optionalPtr(req.Description),
		Eligibility: optionalPtr(req.Eligibility),
		Syllabus:    optionalPtr(req.Syllabus),
		ImageURL:    optionalPtr(req.ImageURL),
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, s.writeError(err, "failed to create course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Update applies a partial update to a course.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid course payload")
	}
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Slug != nil && *req.Slug != course.Slug {
		if err := s.ensureSlugFree(ctx, *req.Slug, id); err != nil {
			return nil, err
		}
		course.Slug = *req.Slug
	}
	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		course.Category = strings.TrimSpace(*req.Category)
	}
	if req.Duration != nil {
		course.Duration = strings.TrimSpace(*req.Duration)
	}
	if req.Fees != nil {
		course.Fees = *req.Fees
	}
	if req.Description != nil {
		course.Description = optionalPtr(req.Description)
	}
	if req.Eligibility != nil {
		course.Eligibility = optionalPtr(req.Eligibility)
	}
	if req.Syllabus != nil {
		course.Syllabus = optionalPtr(req.Syllabus)
	}
	if req.ImageURL != nil {
		course.ImageURL = optionalPtr(req.ImageURL)
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if course.Name == "" || course.Category == "" || course.Duration == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name, category and duration cannot be blank")
	}
	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, s.writeError(err, "failed to update course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course that no student is enrolled in.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return appErrors.Clone(appErrors.ErrConflict, "course has enrolled students")
		}
		return appErrors.Internal(err, "failed to delete course")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) list(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

func (s *CourseService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check slug")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, "slug already in use")
	}
	return nil
}

func (s *CourseService) writeError(err error, msg string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return appErrors.Clone(appErrors.ErrConflict, "slug already in use")
	}
	return appErrors.Internal(err, msg)
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}
