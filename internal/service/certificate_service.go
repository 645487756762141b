package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
	"github.com/noah-isme/institute-api/pkg/export"
)

type certificateRepository interface {
	List(ctx context.Context) ([]models.CertificateWithStudent, error)
	FindByID(ctx context.Context, id string) (*models.Certificate, error)
	Upsert(ctx context.Context, cert *models.Certificate) error
	Update(ctx context.Context, cert *models.Certificate) error
}

type rollVerifier interface {
	Verify(ctx context.Context, rollNumber string) (*dto.VerificationResult, error)
}

type certificateRenderer interface {
	Render(data export.CertificateData) ([]byte, error)
}

// CertificateConfig carries institute details printed on certificates.
type CertificateConfig struct {
	InstituteName string
	PublicBaseURL string
}

// CertificateService manages issuance records and renders issued certificates.
type CertificateService struct {
	repo      certificateRepository
	students  studentByIDFinder
	verifier  rollVerifier
	renderer  certificateRenderer
	cache     cacheInvalidator
	cfg       CertificateConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCertificateService constructs the certificate service.
func NewCertificateService(repo certificateRepository, students studentByIDFinder, verifier rollVerifier, cache cacheInvalidator, cfg CertificateConfig, validate *validator.Validate, logger *zap.Logger) *CertificateService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{
		repo:      repo,
		students:  students,
		verifier:  verifier,
		renderer:  export.NewCertificateRenderer(),
		cache:     cache,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns every certificate record with its student.
func (s *CertificateService) List(ctx context.Context) ([]models.CertificateWithStudent, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list certificates")
	}
	if rows == nil {
		rows = []models.CertificateWithStudent{}
	}
	return rows, nil
}

// Upsert creates or replaces the single certificate record of a student.
// Issuing without a date stamps today.
func (s *CertificateService) Upsert(ctx context.Context, req dto.UpsertCertificateRequest) (*models.Certificate, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid certificate payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}

	cert := &models.Certificate{
		StudentID:         req.StudentID,
		CertificateNumber: optionalPtr(req.CertificateNumber),
		IssueDate:         req.IssueDate,
	}
	if req.IsIssued != nil {
		cert.IsIssued = *req.IsIssued
	}
	s.stampIssueDate(cert)

	if err := s.repo.Upsert(ctx, cert); err != nil {
		return nil, s.mapWriteError(err)
	}
	s.invalidate(ctx)
	return cert, nil
}

// Update changes fields of an existing certificate record.
func (s *CertificateService) Update(ctx context.Context, id string, req dto.UpdateCertificateRequest) (*models.Certificate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid certificate payload")
	}
	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "certificate not found")
		}
		return nil, appErrors.Internal(err, "failed to load certificate")
	}
	if req.CertificateNumber != nil {
		cert.CertificateNumber = optionalPtr(req.CertificateNumber)
	}
	if req.IssueDate != nil {
		cert.IssueDate = req.IssueDate
	}
	if req.IsIssued != nil {
		cert.IsIssued = *req.IsIssued
	}
	s.stampIssueDate(cert)

	if err := s.repo.Update(ctx, cert); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "certificate not found")
		}
		return nil, s.mapWriteError(err)
	}
	s.invalidate(ctx)
	return cert, nil
}

// RenderPDF produces the printable certificate for a roll number. The record
// must pass verification and the certificate must be issued.
func (s *CertificateService) RenderPDF(ctx context.Context, rollNumber string) ([]byte, string, error) {
	result, err := s.verifier.Verify(ctx, rollNumber)
	if err != nil {
		return nil, "", err
	}
	if !result.Certificate.IsIssued {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "certificate not issued")
	}

	data := export.CertificateData{
		InstituteName:  s.cfg.InstituteName,
		StudentName:    result.Student.Name,
		RollNumber:     result.Student.RollNumber,
		CourseName:     result.Course.Name,
		CourseDuration: result.Course.Duration,
		IssueDate:      s.now().UTC(),
		VerifyURL:      s.verifyURL(result.Student.RollNumber),
	}
	if result.Student.FatherName != nil {
		data.FatherName = *result.Student.FatherName
	}
	if result.Certificate.CertificateNumber != nil {
		data.CertificateNumber = *result.Certificate.CertificateNumber
	}
	if result.Certificate.IssueDate != nil {
		data.IssueDate = *result.Certificate.IssueDate
	}

	out, err := s.renderer.Render(data)
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to render certificate")
	}
	return out, fmt.Sprintf("certificate-%s.pdf", result.Student.RollNumber), nil
}

func (s *CertificateService) verifyURL(roll string) string {
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/verify/" + url.PathEscape(roll)
}

func (s *CertificateService) stampIssueDate(cert *models.Certificate) {
	if cert.IsIssued && cert.IssueDate == nil {
		today := s.now().UTC().Truncate(24 * time.Hour)
		cert.IssueDate = &today
	}
}

func (s *CertificateService) mapWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, "certificate number already in use")
	case errors.Is(err, repository.ErrForeignKey):
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	default:
		return appErrors.Internal(err, "failed to save certificate")
	}
}

func (s *CertificateService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}
