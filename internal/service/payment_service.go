package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
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

const (
	defaultPaymentPageSize = 50
	maxPaymentPageSize     = 200
)

type paymentRepository interface {
	List(ctx context.Context, studentID string, page, size int) ([]models.PaymentWithStudent, int, error)
	ListAll(ctx context.Context, studentID string) ([]models.PaymentWithStudent, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type studentByIDFinder interface {
	FindByID(ctx context.Context, id string) (*models.StudentWithCourse, error)
}

type tabularRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type titledRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// PaymentService records fee installments and derives ledgers.
type PaymentService struct {
	repo      paymentRepository
	students  studentByIDFinder
	cache     cacheInvalidator
	csv       tabularRenderer
	pdf       titledRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService constructs the payment service.
func NewPaymentService(repo paymentRepository, students studentByIDFinder, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		repo:      repo,
		students:  students,
		cache:     cache,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns one page of payments newest first, optionally for one student.
func (s *PaymentService) List(ctx context.Context, studentID string, page, size int) ([]models.PaymentWithStudent, *models.Pagination, error) {
	page, size = clampPage(page, size, defaultPaymentPageSize, maxPaymentPageSize)
	payments, total, err := s.repo.List(ctx, strings.TrimSpace(studentID), page, size)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list payments")
	}
	if payments == nil {
		payments = []models.PaymentWithStudent{}
	}
	return payments, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Record stores a payment. Mode defaults to CASH and date to now.
func (s *PaymentService) Record(ctx context.Context, req dto.RecordPaymentRequest) (*models.Payment, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Mode = strings.ToUpper(strings.TrimSpace(req.Mode))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "studentId and a positive amount are required")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}

	payment := &models.Payment{
		StudentID:      req.StudentID,
		Amount:         req.Amount,
		Date:           s.now().UTC(),
		Mode:           models.PaymentCash,
		TransactionRef: optionalPtr(req.TransactionRef),
		Note:           optionalPtr(req.Note),
	}
	if req.Date != nil {
		payment.Date = req.Date.UTC()
	}
	if req.Mode != "" {
		payment.Mode = models.PaymentMode(req.Mode)
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to record payment")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	s.logger.Info("payment recorded", zap.String("student_id", payment.StudentID), zap.Float64("amount", payment.Amount))
	return payment, nil
}

// Ledger returns the fee summary of a student.
func (s *PaymentService) Ledger(ctx context.Context, studentID string) (*dto.FeeSummary, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	payments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Warn("fee ledger unavailable", zap.String("student_id", studentID), zap.Error(err))
		summary := UnavailableFeeSummary(student.TotalFees)
		return &summary, nil
	}
	summary := SummarizeFees(student.TotalFees, payments)
	return &summary, nil
}

var paymentExportHeaders = []string{"Date", "Roll Number", "Student", "Amount", "Mode", "Reference", "Note"}

// ExportCSV renders payments as CSV.
func (s *PaymentService) ExportCSV(ctx context.Context, studentID string) ([]byte, error) {
	data, err := s.exportDataset(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render payments csv")
	}
	return out, nil
}

// ExportPDF renders payments as a tabular PDF report.
func (s *PaymentService) ExportPDF(ctx context.Context, studentID string) ([]byte, error) {
	data, err := s.exportDataset(ctx, studentID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Fee payments as of %s", s.now().Format("02 Jan 2006"))
	out, err := s.pdf.Render(data, title)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render payments pdf")
	}
	return out, nil
}

func (s *PaymentService) exportDataset(ctx context.Context, studentID string) (export.Dataset, error) {
	payments, err := s.repo.ListAll(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return export.Dataset{}, appErrors.Internal(err, "failed to load payments for export")
	}
	rows := make([]map[string]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, map[string]string{
			"Date":        p.Date.Format("2006-01-02"),
			"Roll Number": p.RollNumber,
			"Student":     p.StudentName,
			"Amount":      strconv.FormatFloat(p.Amount, 'f', 2, 64),
			"Mode":        string(p.Mode),
			"Reference":   deref(p.TransactionRef),
			"Note":        deref(p.Note),
		})
	}
	return export.Dataset{Headers: paymentExportHeaders, Rows: rows}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
