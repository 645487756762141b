package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

const (
	defaultStudentPageSize = 50
	maxStudentPageSize     = 100
	rollInsertRetries      = 3
	dashboardCachePattern  = "dash:*"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithCourse, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentWithCourse, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type studentPaymentLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
}

type studentAttendanceLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
}

type studentCertificateFinder interface {
	FindByStudent(ctx context.Context, studentID string) (*models.Certificate, error)
}

type rollAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string)
}

// StudentDeps groups the collaborators of StudentService.
type StudentDeps struct {
	Students     studentRepository
	Courses      courseFinder
	Payments     studentPaymentLister
	Attendance   studentAttendanceLister
	Certificates studentCertificateFinder
	Rolls        rollAllocator
	Cache        cacheInvalidator
}

// StudentService handles student administration.
type StudentService struct {
	deps      StudentDeps
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(deps StudentDeps, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{deps: deps, validator: validate, logger: logger, now: time.Now}
}

// List returns students and pagination metadata, newest first.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithCourse, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultStudentPageSize
	}
	if filter.PageSize > maxStudentPageSize {
		filter.PageSize = maxStudentPageSize
	}
	if filter.Status != "" && !validStudentStatus(filter.Status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid status filter")
	}
	filter.Search = strings.TrimSpace(filter.Search)

	students, total, err := s.deps.Students.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list students")
	}
	if students == nil {
		students = []models.StudentWithCourse{}
	}
	return students, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns a student with payments, attendance, certificate and summaries.
func (s *StudentService) Get(ctx context.Context, id string) (*dto.StudentDetail, error) {
	student, err := s.deps.Students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}

	detail := &dto.StudentDetail{StudentWithCourse: *student, Payments: []models.Payment{}, Attendance: []models.Attendance{}}

	payments, err := s.deps.Payments.ListByStudent(ctx, id)
	if err != nil {
		s.logger.Warn("fee ledger unavailable", zap.String("student_id", id), zap.Error(err))
		detail.Fees = UnavailableFeeSummary(student.TotalFees)
	} else {
		detail.Payments = append(detail.Payments, payments...)
		detail.Fees = SummarizeFees(student.TotalFees, payments)
	}

	attendance, err := s.deps.Attendance.ListByStudent(ctx, id)
	if err != nil {
		s.logger.Warn("attendance unavailable", zap.String("student_id", id), zap.Error(err))
	} else {
		detail.Attendance = append(detail.Attendance, attendance...)
	}
	detail.Summary = SummarizeAttendance(attendance)

	cert, err := s.deps.Certificates.FindByStudent(ctx, id)
	switch {
	case err == nil:
		detail.Certificate = cert
	case !errors.Is(err, sql.ErrNoRows):
		s.logger.Warn("certificate unavailable", zap.String("student_id", id), zap.Error(err))
	}
	return detail, nil
}

// Create enrolls a student under a freshly allocated roll number.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.CourseID = strings.TrimSpace(req.CourseID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid student payload")
	}
	if err := s.ensureCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:                req.Name,
		FatherName:          optionalPtr(req.FatherName),
		MotherName:          optionalPtr(req.MotherName),
		Phone:               optionalPtr(req.Phone),
		Email:               optionalPtr(req.Email),
		Address:             optionalPtr(req.Address),
		DOB:                 req.DOB,
		PhotoURL:            optionalPtr(req.PhotoURL),
		CourseID:            req.CourseID,
		BatchID:             optionalPtr(req.BatchID),
		TotalFees:           req.TotalFees,
		Status:              models.StudentActive,
		VerificationEnabled: true,
		EnrollmentDate:      s.now().UTC(),
	}
	if req.EnrollmentDate != nil {
		student.EnrollmentDate = req.EnrollmentDate.UTC()
	}

	for attempt := 1; ; attempt++ {
		roll, err := s.deps.Rolls.Allocate(ctx)
		if err != nil {
			return nil, err
		}
		student.ID = ""
		student.RollNumber = roll
		err = s.deps.Students.Create(ctx, student)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course or batch does not exist")
		}
		if !errors.Is(err, repository.ErrDuplicate) || attempt == rollInsertRetries {
			return nil, appErrors.Internal(err, "failed to create student")
		}
		s.logger.Warn("roll number taken at insert, retrying", zap.String("roll_number", roll))
	}

	s.invalidate(ctx)
	s.logger.Info("student enrolled", zap.String("student_id", student.ID), zap.String("roll_number", student.RollNumber))
	return student, nil
}

// Update applies a partial update to a student.
func (s *StudentService) Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid student payload")
	}
	existing, err := s.deps.Students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	student := existing.Student

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
		}
		student.Name = name
	}
	if req.FatherName != nil {
		student.FatherName = optionalPtr(req.FatherName)
	}
	if req.MotherName != nil {
		student.MotherName = optionalPtr(req.MotherName)
	}
	if req.Phone != nil {
		student.Phone = optionalPtr(req.Phone)
	}
	if req.Email != nil {
		student.Email = optionalPtr(req.Email)
	}
	if req.Address != nil {
		student.Address = optionalPtr(req.Address)
	}
	if req.DOB != nil {
		student.DOB = req.DOB
	}
	if req.PhotoURL != nil {
		student.PhotoURL = optionalPtr(req.PhotoURL)
	}
	if req.EnrollmentDate != nil {
		student.EnrollmentDate = req.EnrollmentDate.UTC()
	}
	if req.CourseID != nil && *req.CourseID != student.CourseID {
		if err := s.ensureCourse(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		student.CourseID = *req.CourseID
	}
	if req.BatchID != nil {
		student.BatchID = optionalPtr(req.BatchID)
	}
	if req.TotalFees != nil {
		student.TotalFees = *req.TotalFees
	}
	if req.Status != nil {
		student.Status = models.StudentStatus(*req.Status)
	}
	if req.IsBlocked != nil {
		student.IsBlocked = *req.IsBlocked
	}
	if req.VerificationEnabled != nil {
		student.VerificationEnabled = *req.VerificationEnabled
	}

	if err := s.deps.Students.Update(ctx, &student); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		case errors.Is(err, repository.ErrForeignKey):
			return nil, appErrors.Clone(appErrors.ErrValidation, "course or batch does not exist")
		}
		return nil, appErrors.Internal(err, "failed to update student")
	}
	s.invalidate(ctx)
	return &student, nil
}

// Delete removes a student together with its payments, attendance and certificate.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.deps.Students.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Internal(err, "failed to delete student")
	}
	s.invalidate(ctx)
	s.logger.Info("student deleted", zap.String("student_id", id))
	return nil
}

func (s *StudentService) ensureCourse(ctx context.Context, courseID string) error {
	if _, err := s.deps.Courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "course does not exist")
		}
		return appErrors.Internal(err, "failed to load course")
	}
	return nil
}

func (s *StudentService) invalidate(ctx context.Context) {
	if s.deps.Cache != nil {
		s.deps.Cache.Invalidate(ctx, dashboardCachePattern)
	}
}
