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

func TestValidateRejectionRequiresComment(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	svc := service.NewMaintenanceService(stub.client(), newTestCache(), zap.NewNop())

	for _, comment := range []string{"", "   ", "\t\n"} {
		req := &domain.ValidationRequest{Status: "rejected", Comment: comment}
		_, err := svc.Validate(context.Background(), 5, req)
		assert.ErrorIs(t, err, service.ErrCommentRequired)
	}
	assert.Zero(t, stub.requestCount())
}

func TestPendingValidationsQueriesDedicatedEndpoint(t *testing.T) {
	var gotPath string
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(domain.PaginatedResponse[domain.MaintenanceOperation]{
			Data:        []domain.MaintenanceOperation{{ID: 8, Status: domain.OperationPending}},
			CurrentPage: 1,
			LastPage:    1,
			Total:       1,
		})
	})
	svc := service.NewMaintenanceService(stub.client(), newTestCache(), zap.NewNop())

	page, err := svc.PendingValidations(context.Background(), &domain.ListParams{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, "/validations/pending", gotPath)
	require.Len(t, page.Data, 1)
	assert.Equal(t, domain.OperationPending, page.Data[0].Status)
}

func TestValidateApprovalWithoutComment(t *testing.T) {
	var gotPath string
	var gotBody domain.ValidationRequest
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.MaintenanceOperation]{
			Data: domain.MaintenanceOperation{ID: 5, Status: domain.OperationValidated},
		})
	})
	svc := service.NewMaintenanceService(stub.client(), newTestCache(), zap.NewNop())

	op, err := svc.Validate(context.Background(), 5, &domain.ValidationRequest{Status: "validated"})
	require.NoError(t, err)

	assert.Equal(t, "/maintenance-operations/5/validate", gotPath)
	assert.Equal(t, "validated", gotBody.Status)
	assert.Equal(t, domain.OperationValidated, op.Status)
}

func TestValidateRejectionWithComment(t *testing.T) {
	var gotBody domain.ValidationRequest
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.MaintenanceOperation]{
			Data: domain.MaintenanceOperation{ID: 5, Status: domain.OperationRejected},
		})
	})
	svc := service.NewMaintenanceService(stub.client(), newTestCache(), zap.NewNop())

	req := &domain.ValidationRequest{Status: "rejected", Comment: "Coût des pièces trop élevé"}
	_, err := svc.Validate(context.Background(), 5, req)
	require.NoError(t, err)
	assert.Equal(t, "Coût des pièces trop élevé", gotBody.Comment)
}

func TestOperationMutationInvalidatesSparePartCache(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/spare-parts":
			_ = json.NewEncoder(w).Encode(domain.PaginatedResponse[domain.SparePart]{
				Data: []domain.SparePart{{ID: 1, QuantityInStock: 4}},
			})
		default:
			_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.MaintenanceOperation]{
				Data: domain.MaintenanceOperation{ID: 9},
			})
		}
	})
	cache := newTestCache()
	operations := service.NewMaintenanceService(stub.client(), cache, zap.NewNop())
	parts := service.NewSparePartService(stub.client(), cache, zap.NewNop())

	_, err := parts.List(context.Background(), nil)
	require.NoError(t, err)
	_, err = parts.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.requestCount())

	// Creating an operation consumes stock, so cached part pages must refresh
	_, err = operations.Create(context.Background(), &domain.MaintenanceOperationRequest{
		VehicleID:         1,
		MaintenanceTypeID: 1,
		TechnicianID:      2,
		OperationDate:     "2026-08-15",
	})
	require.NoError(t, err)

	_, err = parts.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, stub.requestCount())
}
