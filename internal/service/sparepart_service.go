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

// SparePartService proxies the spare part inventory to the fleet backend
type SparePartService struct {
	client *backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewSparePartService(client *backend.Client, cache *query.Cache, logger *zap.Logger) *SparePartService {
	return &SparePartService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// List returns a page of parts. Supported filters: category, low_stock.
func (s *SparePartService) List(ctx context.Context, params *domain.ListParams) (*domain.PaginatedResponse[domain.SparePart], error) {
	values := listValues(params)
	key := cacheKey("spare-parts", values)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page domain.PaginatedResponse[domain.SparePart]
		if err := s.client.GetJSON(ctx, "/spare-parts", values, &page); err != nil {
			return nil, fmt.Errorf("failed to list spare parts: %w", err)
		}
		return &page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.PaginatedResponse[domain.SparePart]), nil
}

// Get returns one part
func (s *SparePartService) Get(ctx context.Context, id int) (*domain.SparePart, error) {
	var resp domain.APIResponse[domain.SparePart]
	if err := s.client.GetJSON(ctx, "/spare-parts/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get spare part %d: %w", id, err)
	}
	return &resp.Data, nil
}

// Create registers a new inventory item
func (s *SparePartService) Create(ctx context.Context, req *domain.SparePartRequest) (*domain.SparePart, error) {
	var resp domain.APIResponse[domain.SparePart]
	if err := s.client.PostJSON(ctx, "/spare-parts", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create spare part: %w", err)
	}

	s.invalidate()
	s.logger.Info("spare part created",
		zap.Int("spare_part_id", resp.Data.ID),
		zap.String("code", resp.Data.Code),
	)
	return &resp.Data, nil
}

// Update modifies an inventory item
func (s *SparePartService) Update(ctx context.Context, id int, req *domain.SparePartRequest) (*domain.SparePart, error) {
	var resp domain.APIResponse[domain.SparePart]
	if err := s.client.PutJSON(ctx, "/spare-parts/"+strconv.Itoa(id), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update spare part %d: %w", id, err)
	}
	s.invalidate()
	return &resp.Data, nil
}

// Delete removes an inventory item
func (s *SparePartService) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, "/spare-parts/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("failed to delete spare part %d: %w", id, err)
	}
	s.invalidate()
	return nil
}

// StockAdjustment pairs the backend's authoritative result with the level
// the confirmation announced before the form was submitted
type StockAdjustment struct {
	Part      *domain.SparePart `json:"part"`
	Projected int               `json:"projected_stock"`
}

// UpdateStock adjusts a part's quantity in stock. The current level is read
// first so the response can carry the projected figure shown to the user;
// removals project no lower than zero.
func (s *SparePartService) UpdateStock(ctx context.Context, id int, req *domain.StockUpdateRequest) (*StockAdjustment, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	projected := current.QuantityInStock + req.Quantity
	if req.Operation == "remove" {
		projected = StockPreview(current.QuantityInStock, req.Quantity)
	}

	var resp domain.APIResponse[domain.SparePart]
	if err := s.client.PostJSON(ctx, "/spare-parts/"+strconv.Itoa(id)+"/update-stock", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update stock for part %d: %w", id, err)
	}

	s.invalidate()
	s.logger.Info("stock adjusted",
		zap.Int("spare_part_id", id),
		zap.String("operation", req.Operation),
		zap.Int("quantity", req.Quantity),
		zap.Int("projected_stock", projected),
	)
	return &StockAdjustment{Part: &resp.Data, Projected: projected}, nil
}

// StockPreview computes the stock level a removal would leave, floored at
// zero. This drives the projected figure; the backend remains the authority
// on the actual adjustment.
func StockPreview(current, quantity int) int {
	remaining := current - quantity
	if remaining < 0 {
		return 0
	}
	return remaining
}

// LowStock returns every part currently below its minimum
func (s *SparePartService) LowStock(ctx context.Context) ([]domain.SparePart, error) {
	result, err := s.cache.Get(ctx, "spare-parts:alerts", func(ctx context.Context) (interface{}, error) {
		var resp domain.APIResponse[[]domain.SparePart]
		if err := s.client.GetJSON(ctx, "/spare-parts/alerts/low-stock", nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch low stock alerts: %w", err)
		}
		return resp.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.SparePart), nil
}

func (s *SparePartService) invalidate() {
	s.cache.InvalidatePrefix("spare-parts")
	s.cache.InvalidatePrefix("dashboard")
}
