package service

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type rollNumberFinder interface {
	FindByRollNumber(ctx context.Context, roll string) (*models.StudentWithCourse, error)
}

type verificationMetrics interface {
	RecordVerification(outcome string)
}

// VerificationDeps groups the collaborators of VerificationService.
type VerificationDeps struct {
	Students     rollNumberFinder
	Payments     studentPaymentLister
	Attendance   studentAttendanceLister
	Certificates studentCertificateFinder
	Metrics      verificationMetrics
}

// VerificationService is the only path through which a student's record is
// disclosed publicly. Blocked students and students with verification turned
// off are reported as restricted without any data.
type VerificationService struct {
	deps   VerificationDeps
	logger *zap.Logger
}

// NewVerificationService constructs the verification gate.
func NewVerificationService(deps VerificationDeps, logger *zap.Logger) *VerificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerificationService{deps: deps, logger: logger}
}

// Verify looks up a roll number and returns the public view of the student.
func (s *VerificationService) Verify(ctx context.Context, rollNumber string) (*dto.VerificationResult, error) {
	roll := normalizeRoll(rollNumber)
	if roll == "" {
		s.record(OutcomeNotFound)
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	student, err := s.deps.Students.FindByRollNumber(ctx, roll)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.record(OutcomeNotFound)
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.record(OutcomeError)
		return nil, appErrors.Internal(err, "failed to look up roll number")
	}

	if student.IsBlocked || !student.VerificationEnabled {
		s.record(OutcomeRestricted)
		return nil, appErrors.Clone(appErrors.ErrAccessRestricted, "verification not available for this roll number")
	}

	result := &dto.VerificationResult{
		Student: dto.VerifiedStudent{
			Name:           student.Name,
			FatherName:     student.FatherName,
			RollNumber:     student.RollNumber,
			PhotoURL:       student.PhotoURL,
			EnrollmentDate: student.EnrollmentDate,
			Status:         string(student.Status),
		},
		Course: dto.VerifiedCourse{Name: student.CourseName, Duration: student.CourseDuration},
	}
	if student.BatchName != nil {
		result.Batch = &dto.VerifiedBatch{Name: *student.BatchName, Timing: student.BatchTiming}
	}

	payments, err := s.deps.Payments.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Warn("fee ledger unavailable during verification", zap.String("roll_number", roll), zap.Error(err))
		result.Fees = UnavailableFeeSummary(student.TotalFees)
	} else {
		result.Fees = SummarizeFees(student.TotalFees, payments)
	}

	attendance, err := s.deps.Attendance.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Warn("attendance unavailable during verification", zap.String("roll_number", roll), zap.Error(err))
	}
	result.Attendance = SummarizeAttendance(attendance)

	cert, err := s.deps.Certificates.FindByStudent(ctx, student.ID)
	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		s.logger.Warn("certificate unavailable during verification", zap.String("roll_number", roll), zap.Error(err))
	case err == nil && cert.IsIssued:
		result.Certificate = dto.VerifiedCertificate{
			IsIssued:          true,
			CertificateNumber: cert.CertificateNumber,
			IssueDate:         cert.IssueDate,
		}
	}

	s.record(OutcomeVisible)
	return result, nil
}

func (s *VerificationService) record(outcome string) {
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordVerification(outcome)
	}
}

// normalizeRoll decodes a path segment and trims surrounding whitespace.
func normalizeRoll(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
