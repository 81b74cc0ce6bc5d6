package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"go.uber.org/zap"
)

// DashboardService serves the landing page aggregates through the query
// cache. The dashboard is the most requested read and the one that tolerates
// a short staleness window best.
type DashboardService struct {
	client *backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewDashboardService(client *backend.Client, cache *query.Cache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Get returns the dashboard for a year, zero meaning the backend's current
// year default
func (s *DashboardService) Get(ctx context.Context, year int) (*domain.Dashboard, error) {
	values := url.Values{}
	if year > 0 {
		values.Set("year", strconv.Itoa(year))
	}
	key := cacheKey("dashboard", values)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var dashboard domain.Dashboard
		if err := s.client.GetJSON(ctx, "/dashboard", values, &dashboard); err != nil {
			return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
		}
		return &dashboard, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Dashboard), nil
}

// Refresh drops the cached dashboard and fetches it again. The warm job uses
// this so the first browser hit after a cache expiry does not pay the
// backend round trip.
func (s *DashboardService) Refresh(ctx context.Context, year int) error {
	s.cache.InvalidatePrefix("dashboard")
	_, err := s.Get(ctx, year)
	return err
}
