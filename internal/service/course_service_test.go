package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	"github.com/noah-isme/institute-api/internal/repository"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type fakeCourseRepo struct {
	courses   []models.Course
	filters   []models.CourseFilter
	deleteErr error
	created   []models.Course
}

func (f *fakeCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	f.filters = append(f.filters, filter)
	var out []models.Course
	for _, c := range f.courses {
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	for i := range f.courses {
		if f.courses[i].ID == id {
			c := f.courses[i]
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCourseRepo) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	for i := range f.courses {
		if f.courses[i].Slug == slug {
			c := f.courses[i]
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCourseRepo) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, c := range f.courses {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = "course-new"
	f.created = append(f.created, *course)
	return nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error { return nil }

func (f *fakeCourseRepo) Delete(ctx context.Context, id string) error { return f.deleteErr }

func catalogFixture() *fakeCourseRepo {
	return &fakeCourseRepo{courses: []models.Course{
		{ID: "c1", Name: "Tally Prime", Slug: "tally-prime", Category: "Accounting", IsActive: true},
		{ID: "c2", Name: "DCA", Slug: "dca", Category: "Computer", IsActive: true, Syllabus: strPtr("MS Office\n\n  Internet  \n")},
		{ID: "c3", Name: "Old Course", Slug: "old", Category: "Computer", IsActive: false},
	}}
}

func TestGetBySlugSplitsSyllabus(t *testing.T) {
	svc := NewCourseService(catalogFixture(), nil, nil, nil)

	detail, err := svc.GetBySlug(context.Background(), " DCA ")
	require.NoError(t, err)
	assert.Equal(t, []string{"MS Office", "Internet"}, detail.Modules)
}

func TestGetBySlugMissingOrInactive(t *testing.T) {
	svc := NewCourseService(catalogFixture(), nil, nil, nil)

	_, err := svc.GetBySlug(context.Background(), "ccc")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = svc.GetBySlug(context.Background(), "old")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestSyllabusModulesPlaceholder(t *testing.T) {
	assert.Len(t, SyllabusModules(nil), 4)
	assert.Equal(t, placeholderModules, SyllabusModules(strPtr("  \n ")))
}

func TestCatalogGroupsByCategory(t *testing.T) {
	svc := NewCourseService(catalogFixture(), nil, nil, nil)

	groups, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Accounting", groups[0].Category)
	assert.Equal(t, "Computer", groups[1].Category)
	assert.Len(t, groups[1].Courses, 1)
}

func TestPopularDefaultsLimit(t *testing.T) {
	repo := catalogFixture()
	svc := NewCourseService(repo, nil, nil, nil)

	_, err := svc.Popular(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, repo.filters, 1)
	assert.Equal(t, defaultPopularLimit, repo.filters[0].Limit)
	assert.Equal(t, models.CourseOrderCreated, repo.filters[0].Order)
}

func TestCreateCourseRejectsTakenSlug(t *testing.T) {
	svc := NewCourseService(catalogFixture(), nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateCourseRequest{Name: "DCA 2", Slug: "dca", Category: "Computer", Duration: "6 Months"})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, err = svc.Create(context.Background(), dto.CreateCourseRequest{Name: "Bad", Slug: "Bad Slug", Category: "Computer", Duration: "1 Month"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestDeleteCourseWithStudents(t *testing.T) {
	repo := catalogFixture()
	repo.deleteErr = repository.ErrForeignKey
	cache := &fakeInvalidator{}
	svc := NewCourseService(repo, cache, nil, nil)

	err := svc.Delete(context.Background(), "c1")
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
	assert.Empty(t, cache.patterns)
}
