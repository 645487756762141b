package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "KPCI", cfg.Institute.RollPrefix)
	assert.Equal(t, 20, cfg.Institute.MaxRollAttempts)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.False(t, cfg.Uploads.CloudinaryEnabled())
	assert.Equal(t, time.Minute, cfg.Dashboard.CacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ROLL_NUMBER_PREFIX", " abc ")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_UPLOAD_PRESET", "unsigned")
	t.Setenv("PUBLIC_BASE_URL", "https://kpci.example/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ABC", cfg.Institute.RollPrefix)
	assert.True(t, cfg.Uploads.CloudinaryEnabled())
	assert.Equal(t, "https://kpci.example", cfg.Institute.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("", time.Second))
	assert.Equal(t, time.Second, parseDuration("nope", time.Second))
	assert.Equal(t, 2*time.Minute, parseDuration("2m", time.Second))
}
