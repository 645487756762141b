package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/noah-isme/institute-api/internal/models"
)

type fakeStudentStore struct {
	byID      map[string]*models.StudentWithCourse
	findErr   error
	createErr []error
	created   []models.Student
	updated   []models.Student
	deleted   []string
}

func newFakeStudentStore(students ...models.StudentWithCourse) *fakeStudentStore {
	store := &fakeStudentStore{byID: map[string]*models.StudentWithCourse{}}
	for i := range students {
		s := students[i]
		store.byID[s.ID] = &s
	}
	return store
}

func (f *fakeStudentStore) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithCourse, int, error) {
	out := make([]models.StudentWithCourse, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (f *fakeStudentStore) FindByID(ctx context.Context, id string) (*models.StudentWithCourse, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) FindByRollNumber(ctx context.Context, roll string) (*models.StudentWithCourse, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, s := range f.byID {
		if s.RollNumber == roll {
			copied := *s
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	if len(f.createErr) > 0 {
		err := f.createErr[0]
		f.createErr = f.createErr[1:]
		if err != nil {
			return err
		}
	}
	student.ID = "stu-new"
	f.created = append(f.created, *student)
	return nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.byID[student.ID]; !ok {
		return sql.ErrNoRows
	}
	f.updated = append(f.updated, *student)
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return sql.ErrNoRows
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCourseFinder struct {
	courses map[string]*models.Course
}

func (f *fakeCourseFinder) FindByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

type fakePaymentLister struct {
	payments []models.Payment
	err      error
}

func (f *fakePaymentLister) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	return f.payments, f.err
}

type fakeAttendanceLister struct {
	records []models.Attendance
	err     error
}

func (f *fakeAttendanceLister) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	return f.records, f.err
}

type fakeCertificateFinder struct {
	cert *models.Certificate
	err  error
}

func (f *fakeCertificateFinder) FindByStudent(ctx context.Context, studentID string) (*models.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cert == nil {
		return nil, sql.ErrNoRows
	}
	return f.cert, nil
}

type fakeInvalidator struct {
	mu       sync.Mutex
	patterns []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, pattern string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)
}

type fakeOutcomes struct {
	outcomes  []string
	enquiries int
	uploads   map[string]int
}

func (f *fakeOutcomes) RecordVerification(outcome string) { f.outcomes = append(f.outcomes, outcome) }
func (f *fakeOutcomes) RecordEnquiry()                    { f.enquiries++ }
func (f *fakeOutcomes) RecordUpload(backend string, ok bool) {
	if f.uploads == nil {
		f.uploads = map[string]int{}
	}
	key := backend + ":ok"
	if !ok {
		key = backend + ":failed"
	}
	f.uploads[key]++
}

type fixedRolls struct {
	rolls []string
	calls int
}

func (f *fixedRolls) Allocate(ctx context.Context) (string, error) {
	roll := f.rolls[f.calls%len(f.rolls)]
	f.calls++
	return roll, nil
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func sampleStudent(id, roll string) models.StudentWithCourse {
	return models.StudentWithCourse{
		Student: models.Student{
			ID:                  id,
			RollNumber:          roll,
			Name:                "Aarav Sharma",
			FatherName:          strPtr("Rakesh Sharma"),
			CourseID:            "course-dca",
			TotalFees:           8000,
			Status:              models.StudentActive,
			VerificationEnabled: true,
			EnrollmentDate:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		CourseName:     "Diploma in Computer Applications",
		CourseDuration: "6 Months",
	}
}
