package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "1700000000000-my_photo__1_.png", SafeName("my photo (1).png", now))
	assert.Equal(t, "1700000000000-upload", SafeName("", now))
}

func TestLocalStorageUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "uploads/")
	require.NoError(t, err)
	store.now = func() time.Time { return time.UnixMilli(42) }

	url, err := store.Upload(context.Background(), Object{Name: "../../etc/passwd pic.jpg", Body: strings.NewReader("data")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/42-passwd_pic.jpg", url)

	content, err := os.ReadFile(filepath.Join(dir, "42-passwd_pic.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, store.Delete("42-passwd_pic.jpg"))
	_, err = os.Stat(filepath.Join(dir, "42-passwd_pic.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestCloudinaryUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unsigned", r.FormValue("upload_preset"))
		assert.Equal(t, "kpci", r.FormValue("folder"))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "logo.png", header.Filename)
		_ = json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://res.cloudinary.com/demo/logo.png"})
	}))
	defer srv.Close()

	uploader := NewCloudinaryUploader("demo", "unsigned", "kpci", time.Second, WithCloudinaryBaseURL(srv.URL))
	url, err := uploader.Upload(context.Background(), Object{Name: "logo.png", Body: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/logo.png", url)
}

func TestCloudinaryUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
	}))
	defer srv.Close()

	uploader := NewCloudinaryUploader("demo", "missing", "", time.Second, WithCloudinaryBaseURL(srv.URL))
	_, err := uploader.Upload(context.Background(), Object{Name: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "Upload preset not found")
}
