package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStockPreview(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		quantity int
		want     int
	}{
		{"partial removal", 10, 3, 7},
		{"exact removal", 5, 5, 0},
		{"over removal floors at zero", 3, 10, 0},
		{"nothing removed", 8, 0, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.StockPreview(tt.current, tt.quantity))
		})
	}
}

func TestUpdateStockPostsAdjustment(t *testing.T) {
	var gotPath string
	var gotBody domain.StockUpdateRequest
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.SparePart]{
				Data: domain.SparePart{ID: 7, QuantityInStock: 8},
			})
			return
		}
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.SparePart]{
			Data: domain.SparePart{ID: 7, QuantityInStock: 12},
		})
	})
	svc := service.NewSparePartService(stub.client(), newTestCache(), zap.NewNop())

	adjustment, err := svc.UpdateStock(context.Background(), 7, &domain.StockUpdateRequest{
		Quantity:  4,
		Operation: "add",
	})
	require.NoError(t, err)

	assert.Equal(t, "/spare-parts/7/update-stock", gotPath)
	assert.Equal(t, "add", gotBody.Operation)
	assert.Equal(t, 4, gotBody.Quantity)
	assert.Equal(t, 12, adjustment.Projected)
	assert.Equal(t, 12, adjustment.Part.QuantityInStock)
}

func TestUpdateStockRemovalProjectsNoLowerThanZero(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.SparePart]{
				Data: domain.SparePart{ID: 7, QuantityInStock: 3},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.SparePart]{
			Data: domain.SparePart{ID: 7, QuantityInStock: 0},
		})
	})
	svc := service.NewSparePartService(stub.client(), newTestCache(), zap.NewNop())

	adjustment, err := svc.UpdateStock(context.Background(), 7, &domain.StockUpdateRequest{
		Quantity:  5,
		Operation: "remove",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, adjustment.Projected)
}

func TestLowStockFetchesAlertList(t *testing.T) {
	var gotPath string
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(domain.APIResponse[[]domain.SparePart]{
			Data: []domain.SparePart{
				{ID: 1, Code: "FLT-001", QuantityInStock: 1, MinimumStock: 5},
			},
		})
	})
	svc := service.NewSparePartService(stub.client(), newTestCache(), zap.NewNop())

	parts, err := svc.LowStock(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/spare-parts/alerts/low-stock", gotPath)
	require.Len(t, parts, 1)
	assert.True(t, parts[0].IsLowStock())
}
