package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"go.uber.org/zap"
)

// MaxImageSize is the upload limit for vehicle photos
const MaxImageSize = 5 << 20

// VehicleImage is an uploaded vehicle photo
type VehicleImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VehicleService proxies vehicle CRUD to the fleet backend
type VehicleService struct {
	client *backend.Client
	cache  *query.Cache
	logger *zap.Logger
}

func NewVehicleService(client *backend.Client, cache *query.Cache, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// List returns a page of vehicles. Supported filters: status, vehicle_type_id.
func (s *VehicleService) List(ctx context.Context, params *domain.ListParams) (*domain.PaginatedResponse[domain.Vehicle], error) {
	values := listValues(params)
	key := cacheKey("vehicles", values)

	result, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		var page domain.PaginatedResponse[domain.Vehicle]
		if err := s.client.GetJSON(ctx, "/vehicles", values, &page); err != nil {
			return nil, fmt.Errorf("failed to list vehicles: %w", err)
		}
		return &page, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.PaginatedResponse[domain.Vehicle]), nil
}

// Get returns a single vehicle with its relations
func (s *VehicleService) Get(ctx context.Context, id int) (*domain.Vehicle, error) {
	var resp domain.APIResponse[domain.Vehicle]
	if err := s.client.GetJSON(ctx, "/vehicles/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get vehicle %d: %w", id, err)
	}
	return &resp.Data, nil
}

// Create registers a new vehicle, optionally with a photo. A vehicle not
// under warranty never sends a warranty end date, whatever the form held.
func (s *VehicleService) Create(ctx context.Context, req *domain.VehicleRequest, image *VehicleImage) (*domain.Vehicle, error) {
	normalizeWarranty(req)
	if err := checkImage(image); err != nil {
		return nil, err
	}

	var resp domain.APIResponse[domain.Vehicle]
	if image != nil {
		upload := &backend.Upload{
			FieldName:   "image",
			Filename:    image.Filename,
			ContentType: image.ContentType,
			Data:        bytes.NewReader(image.Data),
		}
		if err := s.client.PostMultipart(ctx, "/vehicles", vehicleFields(req, ""), upload, &resp); err != nil {
			return nil, fmt.Errorf("failed to create vehicle: %w", err)
		}
	} else {
		if err := s.client.PostJSON(ctx, "/vehicles", req, &resp); err != nil {
			return nil, fmt.Errorf("failed to create vehicle: %w", err)
		}
	}

	s.invalidate()
	s.logger.Info("vehicle created",
		zap.Int("vehicle_id", resp.Data.ID),
		zap.String("registration", resp.Data.RegistrationNumber),
	)
	return &resp.Data, nil
}

// Update modifies a vehicle. With a photo the backend only accepts multipart
// POST carrying a _method=PUT override; without one a plain JSON PUT is used.
func (s *VehicleService) Update(ctx context.Context, id int, req *domain.VehicleRequest, image *VehicleImage) (*domain.Vehicle, error) {
	normalizeWarranty(req)
	if err := checkImage(image); err != nil {
		return nil, err
	}

	path := "/vehicles/" + strconv.Itoa(id)
	var resp domain.APIResponse[domain.Vehicle]
	if image != nil {
		upload := &backend.Upload{
			FieldName:   "image",
			Filename:    image.Filename,
			ContentType: image.ContentType,
			Data:        bytes.NewReader(image.Data),
		}
		if err := s.client.PostMultipart(ctx, path, vehicleFields(req, "PUT"), upload, &resp); err != nil {
			return nil, fmt.Errorf("failed to update vehicle %d: %w", id, err)
		}
	} else {
		if err := s.client.PutJSON(ctx, path, req, &resp); err != nil {
			return nil, fmt.Errorf("failed to update vehicle %d: %w", id, err)
		}
	}

	s.invalidate()
	return &resp.Data, nil
}

// Delete removes a vehicle
func (s *VehicleService) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, "/vehicles/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("failed to delete vehicle %d: %w", id, err)
	}
	s.invalidate()
	s.logger.Info("vehicle deleted", zap.Int("vehicle_id", id))
	return nil
}

// Analytics returns the vehicles page aggregates
func (s *VehicleService) Analytics(ctx context.Context) (*domain.VehicleAnalytics, error) {
	result, err := s.cache.Get(ctx, "vehicles:analytics", func(ctx context.Context) (interface{}, error) {
		var analytics domain.VehicleAnalytics
		if err := s.client.GetJSON(ctx, "/vehicles/analytics", nil, &analytics); err != nil {
			return nil, fmt.Errorf("failed to fetch vehicle analytics: %w", err)
		}
		return &analytics, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.VehicleAnalytics), nil
}

// Export passes through the backend-generated vehicle list export. The
// backend renders the file; only excel and pdf are offered there.
func (s *VehicleService) Export(ctx context.Context, format string) ([]byte, string, error) {
	if format == "" {
		format = "excel"
	}
	if format != "excel" && format != "pdf" {
		return nil, "", ErrUnknownExportFormat
	}

	data, contentType, err := s.client.Download(ctx, "/vehicles/export", url.Values{"format": {format}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to export vehicles: %w", err)
	}
	return data, contentType, nil
}

// ListTypes returns the vehicle type reference list
func (s *VehicleService) ListTypes(ctx context.Context) ([]domain.VehicleType, error) {
	result, err := s.cache.Get(ctx, "vehicle-types", func(ctx context.Context) (interface{}, error) {
		var resp domain.APIResponse[[]domain.VehicleType]
		if err := s.client.GetJSON(ctx, "/vehicle-types", nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list vehicle types: %w", err)
		}
		return resp.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.VehicleType), nil
}

func (s *VehicleService) invalidate() {
	s.cache.InvalidatePrefix("vehicles")
	s.cache.InvalidatePrefix("dashboard")
}

// normalizeWarranty enforces the warranty pairing rule on outgoing payloads
func normalizeWarranty(req *domain.VehicleRequest) {
	if !req.UnderWarranty {
		req.WarrantyEndDate = ""
	}
}

func checkImage(image *VehicleImage) error {
	if image == nil {
		return nil
	}
	if len(image.Data) > MaxImageSize {
		return ErrImageTooLarge
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return ErrNotAnImage
	}
	return nil
}

// vehicleFields flattens a vehicle payload into multipart form fields.
// methodOverride is the Laravel-style verb tunnel; empty means a real POST.
func vehicleFields(req *domain.VehicleRequest, methodOverride string) map[string]string {
	fields := map[string]string{
		"registration_number": req.RegistrationNumber,
		"brand":               req.Brand,
		"model":               req.Model,
		"vehicle_type_id":     strconv.Itoa(req.VehicleTypeID),
		"status":              req.Status,
		"under_warranty":      boolField(req.UnderWarranty),
	}
	if req.Year != 0 {
		fields["year"] = strconv.Itoa(req.Year)
	}
	if req.AcquisitionDate != "" {
		fields["acquisition_date"] = req.AcquisitionDate
	}
	if req.UnderWarranty && req.WarrantyEndDate != "" {
		fields["warranty_end_date"] = req.WarrantyEndDate
	}
	if methodOverride != "" {
		fields["_method"] = methodOverride
	}
	return fields
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
