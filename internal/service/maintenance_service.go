package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"go.uber.org/zap"
)

// MaintenanceService proxies maintenance operations and the type catalog to
// the fleet backend
type MaintenanceService struct {
	client *backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewMaintenanceService(client *backend.Client, cache *query.Cache, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// List returns a page of operations. Supported filters: status, vehicle_id,
// technician_id, date_from, date_to.
func (s *MaintenanceService) List(ctx context.Context, params *domain.ListParams) (*domain.PaginatedResponse[domain.MaintenanceOperation], error) {
	values := listValues(params)
	key := cacheKey("operations", values)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page domain.PaginatedResponse[domain.MaintenanceOperation]
		if err := s.client.GetJSON(ctx, "/maintenance-operations", values, &page); err != nil {
			return nil, fmt.Errorf("failed to list operations: %w", err)
		}
		return &page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.PaginatedResponse[domain.MaintenanceOperation]), nil
}

// Get returns one operation with its relations and spare part lines
func (s *MaintenanceService) Get(ctx context.Context, id int) (*domain.MaintenanceOperation, error) {
	var resp domain.APIResponse[domain.MaintenanceOperation]
	if err := s.client.GetJSON(ctx, "/maintenance-operations/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get operation %d: %w", id, err)
	}
	return &resp.Data, nil
}

// Create records a new operation in pending status. The backend computes the
// parts cost from current unit prices and the total.
func (s *MaintenanceService) Create(ctx context.Context, req *domain.MaintenanceOperationRequest) (*domain.MaintenanceOperation, error) {
	var resp domain.APIResponse[domain.MaintenanceOperation]
	if err := s.client.PostJSON(ctx, "/maintenance-operations", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}

	s.invalidate()
	s.logger.Info("operation created",
		zap.Int("operation_id", resp.Data.ID),
		zap.Int("vehicle_id", resp.Data.VehicleID),
	)
	return &resp.Data, nil
}

// Update modifies a pending operation
func (s *MaintenanceService) Update(ctx context.Context, id int, req *domain.MaintenanceOperationRequest) (*domain.MaintenanceOperation, error) {
	var resp domain.APIResponse[domain.MaintenanceOperation]
	if err := s.client.PutJSON(ctx, "/maintenance-operations/"+strconv.Itoa(id), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update operation %d: %w", id, err)
	}
	s.invalidate()
	return &resp.Data, nil
}

// Delete removes an operation
func (s *MaintenanceService) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, "/maintenance-operations/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("failed to delete operation %d: %w", id, err)
	}
	s.invalidate()
	return nil
}

// Validate records the chief's decision on a pending operation. Rejections
// without a comment are refused here, before any network call.
func (s *MaintenanceService) Validate(ctx context.Context, id int, req *domain.ValidationRequest) (*domain.MaintenanceOperation, error) {
	if req.Status == string(domain.OperationRejected) && strings.TrimSpace(req.Comment) == "" {
		return nil, ErrCommentRequired
	}

	var resp domain.APIResponse[domain.MaintenanceOperation]
	if err := s.client.PostJSON(ctx, "/maintenance-operations/"+strconv.Itoa(id)+"/validate", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to validate operation %d: %w", id, err)
	}

	s.invalidate()
	s.logger.Info("operation reviewed",
		zap.Int("operation_id", id),
		zap.String("decision", req.Status),
	)
	return &resp.Data, nil
}

// Planned returns the upcoming scheduled interventions
func (s *MaintenanceService) Planned(ctx context.Context) ([]domain.MaintenanceOperation, error) {
	result, err := s.cache.Get(ctx, "operations:planned", func(ctx context.Context) (interface{}, error) {
		var resp domain.APIResponse[[]domain.MaintenanceOperation]
		if err := s.client.GetJSON(ctx, "/maintenance-operations/planned", nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list planned operations: %w", err)
		}
		return resp.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.MaintenanceOperation), nil
}

// PendingValidations returns the operations awaiting a chief's decision
func (s *MaintenanceService) PendingValidations(ctx context.Context, params *domain.ListParams) (*domain.PaginatedResponse[domain.MaintenanceOperation], error) {
	values := listValues(params)
	key := cacheKey("operations:pending", values)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page domain.PaginatedResponse[domain.MaintenanceOperation]
		if err := s.client.GetJSON(ctx, "/validations/pending", values, &page); err != nil {
			return nil, fmt.Errorf("failed to list pending validations: %w", err)
		}
		return &page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.PaginatedResponse[domain.MaintenanceOperation]), nil
}

// ListTypes returns the maintenance type catalog
func (s *MaintenanceService) ListTypes(ctx context.Context) ([]domain.MaintenanceType, error) {
	result, err := s.cache.Get(ctx, "maintenance-types", func(ctx context.Context) (interface{}, error) {
		var resp domain.APIResponse[[]domain.MaintenanceType]
		if err := s.client.GetJSON(ctx, "/maintenance-types", nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list maintenance types: %w", err)
		}
		return resp.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.MaintenanceType), nil
}

func (s *MaintenanceService) invalidate() {
	s.cache.InvalidatePrefix("operations")
	s.cache.InvalidatePrefix("dashboard")
	// Part quantities move when an operation consumes stock
	s.cache.InvalidatePrefix("spare-parts")
}
