package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const cloudinaryAPI = "https://api.cloudinary.com/v1_1"

// ErrUpstream reports a failed or rejected upload at the remote backend.
var ErrUpstream = errors.New("upload backend failure")

// CloudinaryUploader performs unsigned uploads against the Cloudinary image API.
type CloudinaryUploader struct {
	cloudName string
	preset    string
	folder    string
	baseURL   string
	client    *http.Client
}

// CloudinaryOption customises a CloudinaryUploader.
type CloudinaryOption func(*CloudinaryUploader)

// WithCloudinaryBaseURL points the uploader at a different API root.
func WithCloudinaryBaseURL(base string) CloudinaryOption {
	return func(u *CloudinaryUploader) { u.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) CloudinaryOption {
	return func(u *CloudinaryUploader) {
		if client != nil {
			u.client = client
		}
	}
}

// NewCloudinaryUploader builds an uploader for the given cloud and unsigned preset.
func NewCloudinaryUploader(cloudName, preset, folder string, timeout time.Duration, opts ...CloudinaryOption) *CloudinaryUploader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	u := &CloudinaryUploader{
		cloudName: cloudName,
		preset:    preset,
		folder:    folder,
		baseURL:   cloudinaryAPI,
		client:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Backend names the storage implementation.
func (u *CloudinaryUploader) Backend() string { return "cloudinary" }

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the object as multipart form data and returns its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, obj Object) (string, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("file", obj.Name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, obj.Body); err != nil {
		return "", fmt.Errorf("buffer upload: %w", err)
	}
	if err := form.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("write preset: %w", err)
	}
	if u.folder != "" {
		if err := form.WriteField("folder", u.folder); err != nil {
			return "", fmt.Errorf("write folder: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var payload cloudinaryResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload)

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decodeErr == nil && payload.Error != nil && payload.Error.Message != "" {
			msg = payload.Error.Message
		}
		return "", fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, decodeErr)
	}
	if payload.SecureURL == "" {
		return "", fmt.Errorf("%w: response missing secure_url", ErrUpstream)
	}
	return payload.SecureURL, nil
}
