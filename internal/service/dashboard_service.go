package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/institute-api/internal/dto"
	"github.com/noah-isme/institute-api/internal/models"
	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

const adminDashboardCacheKey = "dash:admin"

type dashboardRepository interface {
	Counts(ctx context.Context, since time.Time) (*models.DashboardCounts, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// DashboardService composes the admin dashboard figures.
type DashboardService struct {
	repo   dashboardRepository
	cache  dashboardCache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard service. A nil cache disables caching.
func NewDashboardService(repo dashboardRepository, cache dashboardCache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// Summary returns the dashboard figures and whether it was served from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.AdminDashboardResponse, bool, error) {
	if s.cache != nil {
		var cached dto.AdminDashboardResponse
		if s.cache.Get(ctx, adminDashboardCacheKey, &cached) {
			return &cached, true, nil
		}
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	counts, err := s.repo.Counts(ctx, monthStart)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load dashboard")
	}
	summary := &dto.AdminDashboardResponse{DashboardCounts: *counts, MonthStart: monthStart, GeneratedAt: now}

	if s.cache != nil {
		s.cache.Set(ctx, adminDashboardCacheKey, summary, s.ttl)
	}
	return summary, false, nil
}
