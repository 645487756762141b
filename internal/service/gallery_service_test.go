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
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type fakeGalleryRepo struct {
	images  []models.GalleryImage
	listErr error
}

func (f *fakeGalleryRepo) List(ctx context.Context) ([]models.GalleryImage, error) {
	return f.images, f.listErr
}

func (f *fakeGalleryRepo) Create(ctx context.Context, image *models.GalleryImage) error {
	image.ID = "img-1"
	f.images = append(f.images, *image)
	return nil
}

func (f *fakeGalleryRepo) Delete(ctx context.Context, id string) error {
	for i, img := range f.images {
		if img.ID == id {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func TestGalleryListCollectsCategories(t *testing.T) {
	repo := &fakeGalleryRepo{images: []models.GalleryImage{
		{ID: "1", URL: "/a.jpg", Category: strPtr("Campus")},
		{ID: "2", URL: "/b.jpg"},
		{ID: "3", URL: "/c.jpg", Category: strPtr("Events")},
		{ID: "4", URL: "/d.jpg", Category: strPtr("Campus")},
	}}
	svc := NewGalleryService(repo, nil, nil)

	view, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Campus", "Events"}, view.Categories)
	assert.Len(t, view.Images, 4)

	empty, err := NewGalleryService(&fakeGalleryRepo{}, nil, nil).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty.Images)
	assert.Empty(t, empty.Categories)
}

func TestGalleryCreate(t *testing.T) {
	repo := &fakeGalleryRepo{}
	svc := NewGalleryService(repo, nil, nil)

	image, err := svc.Create(context.Background(), dto.CreateGalleryImageRequest{URL: " /uploads/lab.jpg ", Caption: strPtr("  "), Order: 2})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/lab.jpg", image.URL)
	assert.Nil(t, image.Caption)
	assert.Equal(t, 2, image.SortOrder)

	_, err = svc.Create(context.Background(), dto.CreateGalleryImageRequest{URL: ""})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(context.Background(), dto.CreateGalleryImageRequest{URL: "javascript:alert(1)"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(context.Background(), dto.CreateGalleryImageRequest{URL: "/x.jpg", Order: -1})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestGalleryDeleteMissing(t *testing.T) {
	svc := NewGalleryService(&fakeGalleryRepo{images: []models.GalleryImage{{ID: "img-1"}}}, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "img-1"))
	assert.True(t, errors.Is(svc.Delete(context.Background(), "img-1"), appErrors.ErrNotFound))
}
