package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/institute-api/pkg/errors"
	"github.com/noah-isme/institute-api/pkg/storage"
)

const defaultMaxUploadBytes = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

type uploadMetrics interface {
	RecordUpload(backend string, ok bool)
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	URL         string `json:"url"`
	Backend     string `json:"backend"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// UploadService accepts image uploads and hands them to the configured backend.
type UploadService struct {
	uploader storage.Uploader
	maxBytes int64
	metrics  uploadMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewUploadService constructs the upload service. A nil uploader means no
// backend is configured and every upload is refused.
func NewUploadService(uploader storage.Uploader, maxBytes int64, metrics uploadMetrics, logger *zap.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{uploader: uploader, maxBytes: maxBytes, metrics: metrics, logger: logger, now: time.Now}
}

// MaxBytes reports the upload size limit.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Upload validates the image content and stores it.
func (s *UploadService) Upload(ctx context.Context, filename string, body io.Reader) (*UploadResult, error) {
	if s.uploader == nil {
		return nil, appErrors.Clone(appErrors.ErrNotImplemented, "uploads are not configured")
	}

	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, appErrors.Validation(err, "failed to read upload")
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	mtype := mimetype.Detect(data)
	if _, ok := allowedImageTypes[mtype.String()]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported file type %s", mtype.String()))
	}

	obj := storage.Object{
		Name:        storage.SafeName(filename, s.now()),
		ContentType: mtype.String(),
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	}
	backend := s.uploader.Backend()
	url, err := s.uploader.Upload(ctx, obj)
	if s.metrics != nil {
		s.metrics.RecordUpload(backend, err == nil)
	}
	if err != nil {
		s.logger.Warn("upload failed", zap.String("backend", backend), zap.Error(err))
		if errors.Is(err, storage.ErrUpstream) {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "image host rejected the upload")
		}
		return nil, appErrors.Internal(err, "failed to store upload")
	}
	return &UploadResult{URL: url, Backend: backend, ContentType: mtype.String(), Size: obj.Size}, nil
}
