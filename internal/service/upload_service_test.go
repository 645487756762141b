package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/institute-api/pkg/errors"
	"github.com/noah-isme/institute-api/pkg/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type recordingUploader struct {
	objects []storage.Object
	err     error
}

func (r *recordingUploader) Upload(ctx context.Context, obj storage.Object) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	_, _ = io.ReadAll(obj.Body)
	r.objects = append(r.objects, obj)
	return "/uploads/" + obj.Name, nil
}

func (r *recordingUploader) Backend() string { return "local" }

func TestUploadAcceptsImage(t *testing.T) {
	uploader := &recordingUploader{}
	metrics := &fakeOutcomes{}
	svc := NewUploadService(uploader, 1024, metrics, nil)

	result, err := svc.Upload(context.Background(), "my photo.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, "local", result.Backend)
	assert.True(t, strings.HasSuffix(result.URL, "-my_photo.png"))
	assert.Equal(t, 1, metrics.uploads["local:ok"])
}

func TestUploadRejectsNonImage(t *testing.T) {
	uploader := &recordingUploader{}
	svc := NewUploadService(uploader, 1024, nil, nil)

	_, err := svc.Upload(context.Background(), "notes.txt", strings.NewReader("plain text, not an image"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, uploader.objects)
}

func TestUploadRejectsOversized(t *testing.T) {
	svc := NewUploadService(&recordingUploader{}, 16, nil, nil)

	_, err := svc.Upload(context.Background(), "big.png", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestUploadWithoutBackend(t *testing.T) {
	svc := NewUploadService(nil, 0, nil, nil)

	_, err := svc.Upload(context.Background(), "a.png", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, appErrors.ErrNotImplemented))
}

func TestUploadUpstreamFailure(t *testing.T) {
	metrics := &fakeOutcomes{}
	svc := NewUploadService(&recordingUploader{err: fmt.Errorf("%w: bad preset", storage.ErrUpstream)}, 1024, metrics, nil)

	_, err := svc.Upload(context.Background(), "a.png", bytes.NewReader(pngHeader))
	assert.True(t, errors.Is(err, appErrors.ErrUpstreamUnavailable))
	assert.Equal(t, 1, metrics.uploads["local:failed"])
}
