package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

const (
	defaultAttendancePageSize = 100
	maxAttendancePageSize     = 500
	maxAttendanceBatch        = 1000
)

type attendanceRepository interface {
	List(ctx context.Context, studentID string, page, size int) ([]models.AttendanceWithStudent, int, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
	BulkUpsert(ctx context.Context, records []models.Attendance) error
}

// AttendanceService records daily attendance marks.
type AttendanceService struct {
	repo     attendanceRepository
	students studentByIDFinder
	cache    cacheInvalidator
	logger   *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, students studentByIDFinder, cache cacheInvalidator, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, students: students, cache: cache, logger: logger}
}

// List returns one page of attendance newest first, optionally for one student.
func (s *AttendanceService) List(ctx context.Context, studentID string, page, size int) ([]models.AttendanceWithStudent, *models.Pagination, error) {
	page, size = clampPage(page, size, defaultAttendancePageSize, maxAttendancePageSize)
	rows, total, err := s.repo.List(ctx, strings.TrimSpace(studentID), page, size)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list attendance")
	}
	if rows == nil {
		rows = []models.AttendanceWithStudent{}
	}
	return rows, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// BulkMark validates every record before writing any, then upserts the whole
// batch atomically. Re-marking a student on the same day replaces the status.
func (s *AttendanceService) BulkMark(ctx context.Context, req dto.BulkAttendanceRequest) (*dto.BulkAttendanceResult, error) {
	if len(req.Records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "records must not be empty")
	}
	if len(req.Records) > maxAttendanceBatch {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("at most %d records per request", maxAttendanceBatch))
	}

	records := make([]models.Attendance, 0, len(req.Records))
	seen := make(map[string]int, len(req.Records))
	for i, mark := range req.Records {
		record, err := parseAttendanceMark(mark)
		if err != nil {
			return nil, appErrors.Validation(err, fmt.Sprintf("records[%d] is invalid", i))
		}
		key := record.StudentID + "|" + record.Date.Format("2006-01-02")
		if prev, ok := seen[key]; ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("records[%d] duplicates records[%d]", i, prev))
		}
		seen[key] = i
		records = append(records, record)
	}

	if err := s.repo.BulkUpsert(ctx, records); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, appErrors.Validation(err, "attendance references an unknown student")
		}
		return nil, appErrors.Internal(err, "failed to save attendance")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, dashboardCachePattern)
	}
	return &dto.BulkAttendanceResult{Saved: len(records)}, nil
}

// Summary returns the attendance percentage of a student.
func (s *AttendanceService) Summary(ctx context.Context, studentID string) (*dto.AttendanceSummary, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	rows, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	summary := SummarizeAttendance(rows)
	return &summary, nil
}

func parseAttendanceMark(mark dto.AttendanceMark) (models.Attendance, error) {
	studentID := strings.TrimSpace(mark.StudentID)
	if studentID == "" {
		return models.Attendance{}, errors.New("studentId is required")
	}
	date, err := parseAttendanceDate(mark.Date)
	if err != nil {
		return models.Attendance{}, err
	}
	status := models.AttendancePresent
	if raw := strings.ToUpper(strings.TrimSpace(mark.Status)); raw != "" {
		if !validAttendanceStatus(models.AttendanceStatus(raw)) {
			return models.Attendance{}, fmt.Errorf("unknown status %q", mark.Status)
		}
		status = models.AttendanceStatus(raw)
	}
	return models.Attendance{StudentID: studentID, Date: date, Status: status}, nil
}

// parseAttendanceDate accepts YYYY-MM-DD or RFC3339 and keeps only the UTC day.
func parseAttendanceDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD or RFC3339", raw)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
