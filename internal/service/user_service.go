package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"go.uber.org/zap"
)

// UserService proxies staff management to the fleet backend. Every operation
// here sits behind the chief gate at the router.
type UserService struct {
	client *backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewUserService(client *backend.Client, cache *query.Cache, logger *zap.Logger) *UserService {
	return &UserService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// List returns a page of staff members. Supported filters: role, is_active.
func (s *UserService) List(ctx context.Context, params *domain.ListParams) (*domain.PaginatedResponse[domain.User], error) {
	values := listValues(params)
	key := cacheKey("users", values)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page domain.PaginatedResponse[domain.User]
		if err := s.client.GetJSON(ctx, "/users", values, &page); err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return &page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.PaginatedResponse[domain.User]), nil
}

// Get returns one staff member
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	var resp domain.APIResponse[domain.User]
	if err := s.client.GetJSON(ctx, "/users/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &resp.Data, nil
}

// Create registers a new staff member
func (s *UserService) Create(ctx context.Context, req *domain.UserRequest) (*domain.User, error) {
	var resp domain.APIResponse[domain.User]
	if err := s.client.PostJSON(ctx, "/users", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.cache.InvalidatePrefix("users")
	s.logger.Info("user created",
		zap.Int("user_id", resp.Data.ID),
		zap.String("role", string(resp.Data.Role)),
	)
	return &resp.Data, nil
}

// Update modifies a staff member. An empty password leaves the current one
// in place.
func (s *UserService) Update(ctx context.Context, id int, req *domain.UserRequest) (*domain.User, error) {
	var resp domain.APIResponse[domain.User]
	if err := s.client.PutJSON(ctx, "/users/"+strconv.Itoa(id), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	s.cache.InvalidatePrefix("users")
	return &resp.Data, nil
}

// Delete removes a staff member
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, "/users/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	s.cache.InvalidatePrefix("users")
	s.logger.Info("user deleted", zap.Int("user_id", id))
	return nil
}

// Technicians returns active technicians for the operation form's selector
func (s *UserService) Technicians(ctx context.Context) ([]domain.User, error) {
	params := &domain.ListParams{
		PerPage: 100,
		Filters: map[string]string{"role": string(domain.RoleTechnician), "is_active": "1"},
	}
	page, err := s.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
