package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type fakeDashboardRepo struct {
	calls int
	since time.Time
	err   error
}

func (f *fakeDashboardRepo) Counts(ctx context.Context, since time.Time) (*models.DashboardCounts, error) {
	f.calls++
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	return &models.DashboardCounts{TotalStudents: 12, ActiveStudents: 10, MonthFees: 15000, UnreadEnquiries: 3}, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	raw, ok := m.entries[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, _ := json.Marshal(value)
	m.entries[key] = raw
}

func TestAdminDashboardCachesSummary(t *testing.T) {
	repo := &fakeDashboardRepo{}
	cache := &memoryCache{entries: map[string][]byte{}}
	svc := NewDashboardService(repo, cache, time.Minute, nil)
	svc.now = func() time.Time { return time.Date(2024, 8, 17, 9, 30, 0, 0, time.UTC) }

	first, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), repo.since)
	assert.Equal(t, 12, first.TotalStudents)

	second, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 15000.0, second.MonthFees)
	assert.Contains(t, cache.entries, adminDashboardCacheKey)
}

func TestAdminDashboardWithoutCache(t *testing.T) {
	repo := &fakeDashboardRepo{err: errors.New("db down")}
	svc := NewDashboardService(repo, nil, 0, nil)

	_, _, err := svc.Summary(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
