package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type fakeEnquiryRepo struct {
	created []models.Enquiry
	read    []string
	err     error
}

func (f *fakeEnquiryRepo) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if f.err != nil {
		return f.err
	}
	enquiry.ID = "enq-1"
	f.created = append(f.created, *enquiry)
	return nil
}

func (f *fakeEnquiryRepo) List(ctx context.Context, unreadOnly bool, page, size int) ([]models.Enquiry, int, error) {
	return f.created, len(f.created), nil
}

func (f *fakeEnquiryRepo) MarkRead(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.read = append(f.read, id)
	return nil
}

func TestSubmitEnquiry(t *testing.T) {
	repo := &fakeEnquiryRepo{}
	cache := &fakeInvalidator{}
	metrics := &fakeOutcomes{}
	svc := NewEnquiryService(repo, cache, metrics, nil, nil)

	enquiry, err := svc.Submit(context.Background(), dto.CreateEnquiryRequest{Name: " Rohan ", Phone: " 9876543210 ", Course: "DCA", Message: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Rohan", enquiry.Name)
	assert.Equal(t, "9876543210", enquiry.Phone)
	assert.Equal(t, "DCA", *enquiry.Course)
	assert.Nil(t, enquiry.Message)
	assert.False(t, enquiry.IsRead)
	assert.Equal(t, 1, metrics.enquiries)
	assert.Equal(t, []string{dashboardCachePattern}, cache.patterns)
}

func TestSubmitEnquiryRequiresNameAndPhone(t *testing.T) {
	repo := &fakeEnquiryRepo{}
	metrics := &fakeOutcomes{}
	svc := NewEnquiryService(repo, nil, metrics, nil, nil)

	_, err := svc.Submit(context.Background(), dto.CreateEnquiryRequest{Name: "Rohan", Phone: "   "})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, repo.created)
	assert.Zero(t, metrics.enquiries)
}

func TestListEnquiriesClampsPage(t *testing.T) {
	svc := NewEnquiryService(&fakeEnquiryRepo{}, nil, nil, nil, nil)

	rows, page, err := svc.List(context.Background(), true, 0, 1000)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.PageSize)
}
