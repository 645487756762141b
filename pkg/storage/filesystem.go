package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage persists uploads on disk and serves them under a public path.
type LocalStorage struct {
	baseDir    string
	publicPath string
	now        func() time.Time
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, publicPath string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./public/uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{
		baseDir:    baseDir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		now:        time.Now,
	}, nil
}

// Backend names the storage implementation.
func (s *LocalStorage) Backend() string { return "local" }

// Dir returns the directory uploads are written to.
func (s *LocalStorage) Dir() string { return s.baseDir }

// PublicPath returns the URL prefix uploads are served from.
func (s *LocalStorage) PublicPath() string { return s.publicPath }

// Upload writes the object to disk under a timestamped safe name.
func (s *LocalStorage) Upload(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := SafeName(filepath.Base(obj.Name), s.now())
	if _, err := s.SaveStream(name, obj.Body); err != nil {
		return "", err
	}
	return path.Join(s.publicPath, name), nil
}

// SaveStream copies from reader into the target file under the base dir.
func (s *LocalStorage) SaveStream(filename string, r io.Reader) (string, error) {
	target, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return filename, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(filename string) error {
	target, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

func (s *LocalStorage) resolve(filename string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + filename))
	if clean == "/" || clean == "." || clean == "" {
		return "", fmt.Errorf("invalid upload name %q", filename)
	}
	return filepath.Join(s.baseDir, clean), nil
}
