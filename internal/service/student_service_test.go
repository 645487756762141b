package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

func newStudentFixture(store *fakeStudentStore, rolls *fixedRolls) (*StudentService, *fakeInvalidator) {
	cache := &fakeInvalidator{}
	svc := NewStudentService(StudentDeps{
		Students:     store,
		Courses:      &fakeCourseFinder{courses: map[string]*models.Course{"course-dca": {ID: "course-dca", Name: "DCA"}}},
		Payments:     &fakePaymentLister{},
		Attendance:   &fakeAttendanceLister{},
		Certificates: &fakeCertificateFinder{},
		Rolls:        rolls,
		Cache:        cache,
	}, nil, nil)
	return svc, cache
}

func TestCreateStudentAllocatesRoll(t *testing.T) {
	store := newFakeStudentStore()
	svc, cache := newStudentFixture(store, &fixedRolls{rolls: []string{"KPCI-2024-4321"}})

	student, err := svc.Create(context.Background(), dto.CreateStudentRequest{Name: "  Priya  ", CourseID: "course-dca", TotalFees: 8000})
	require.NoError(t, err)
	assert.Equal(t, "KPCI-2024-4321", student.RollNumber)
	assert.Equal(t, "Priya", student.Name)
	assert.Equal(t, models.StudentActive, student.Status)
	assert.True(t, student.VerificationEnabled)
	assert.Equal(t, []string{dashboardCachePattern}, cache.patterns)
}

func TestCreateStudentRetriesDuplicateRoll(t *testing.T) {
	store := newFakeStudentStore()
	store.createErr = []error{repository.ErrDuplicate, nil}
	rolls := &fixedRolls{rolls: []string{"KPCI-2024-1000", "KPCI-2024-1001"}}
	svc, _ := newStudentFixture(store, rolls)

	student, err := svc.Create(context.Background(), dto.CreateStudentRequest{Name: "Priya", CourseID: "course-dca"})
	require.NoError(t, err)
	assert.Equal(t, "KPCI-2024-1001", student.RollNumber)
	assert.Equal(t, 2, rolls.calls)
}

func TestCreateStudentUnknownCourse(t *testing.T) {
	svc, _ := newStudentFixture(newFakeStudentStore(), &fixedRolls{rolls: []string{"KPCI-2024-1000"}})

	_, err := svc.Create(context.Background(), dto.CreateStudentRequest{Name: "Priya", CourseID: "course-missing"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestCreateStudentRequiresName(t *testing.T) {
	svc, _ := newStudentFixture(newFakeStudentStore(), &fixedRolls{rolls: []string{"KPCI-2024-1000"}})

	_, err := svc.Create(context.Background(), dto.CreateStudentRequest{Name: "   ", CourseID: "course-dca"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestGetStudentDetail(t *testing.T) {
	store := newFakeStudentStore(sampleStudent("stu-1", "KPCI-2024-1234"))
	svc := NewStudentService(StudentDeps{
		Students:     store,
		Payments:     &fakePaymentLister{payments: []models.Payment{{Amount: 3000}}},
		Attendance:   &fakeAttendanceLister{err: errors.New("timeout")},
		Certificates: &fakeCertificateFinder{},
	}, nil, nil)

	detail, err := svc.Get(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, detail.Fees.BalanceDue)
	assert.Len(t, detail.Payments, 1)
	assert.Empty(t, detail.Attendance)
	assert.Nil(t, detail.Certificate)
}

func TestUpdateStudentBlocksVerification(t *testing.T) {
	store := newFakeStudentStore(sampleStudent("stu-1", "KPCI-2024-1234"))
	svc, _ := newStudentFixture(store, &fixedRolls{rolls: []string{"x"}})

	updated, err := svc.Update(context.Background(), "stu-1", dto.UpdateStudentRequest{IsBlocked: boolPtr(true), Status: strPtr("COMPLETED")})
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked)
	assert.Equal(t, models.StudentCompleted, updated.Status)
	assert.Equal(t, "KPCI-2024-1234", updated.RollNumber)
}

func TestDeleteMissingStudent(t *testing.T) {
	svc, cache := newStudentFixture(newFakeStudentStore(), &fixedRolls{rolls: []string{"x"}})

	err := svc.Delete(context.Background(), "nope")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, cache.patterns)
}

func TestListStudentsRejectsUnknownStatus(t *testing.T) {
	svc, _ := newStudentFixture(newFakeStudentStore(), &fixedRolls{rolls: []string{"x"}})

	_, _, err := svc.List(context.Background(), models.StudentFilter{Status: "GRADUATED"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, page, err := svc.List(context.Background(), models.StudentFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, maxStudentPageSize, page.PageSize)
}
