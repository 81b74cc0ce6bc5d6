package service_test

import (
	"bytes"
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

func vehicleRequest() *domain.VehicleRequest {
	return &domain.VehicleRequest{
		RegistrationNumber: "CE 234 AB",
		Brand:              "Toyota",
		Model:              "Hilux",
		VehicleTypeID:      2,
		Status:             "active",
	}
}

func TestVehicleCreateStripsWarrantyDate(t *testing.T) {
	var gotBody map[string]interface{}
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.Vehicle]{Data: domain.Vehicle{ID: 1}})
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	req := vehicleRequest()
	req.UnderWarranty = false
	req.WarrantyEndDate = "2027-06-30"

	_, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, false, gotBody["under_warranty"])
	assert.NotContains(t, gotBody, "warranty_end_date")
}

func TestVehicleCreateKeepsWarrantyDateWhenUnderWarranty(t *testing.T) {
	var gotBody map[string]interface{}
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.Vehicle]{Data: domain.Vehicle{ID: 1}})
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	req := vehicleRequest()
	req.UnderWarranty = true
	req.WarrantyEndDate = "2027-06-30"

	_, err := svc.Create(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, "2027-06-30", gotBody["warranty_end_date"])
}

func TestVehicleCreateRejectsOversizedImage(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	image := &service.VehicleImage{
		Filename:    "huge.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, service.MaxImageSize+1),
	}
	_, err := svc.Create(context.Background(), vehicleRequest(), image)
	assert.ErrorIs(t, err, service.ErrImageTooLarge)
	assert.Zero(t, stub.requestCount())
}

func TestVehicleCreateRejectsNonImageUpload(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	image := &service.VehicleImage{
		Filename:    "doc.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF"),
	}
	_, err := svc.Create(context.Background(), vehicleRequest(), image)
	assert.ErrorIs(t, err, service.ErrNotAnImage)
	assert.Zero(t, stub.requestCount())
}

func TestVehicleUpdateWithImageTunnelsPut(t *testing.T) {
	var gotMethod, gotOverride, gotUnderWarranty string
	var gotImage []byte
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotOverride = r.FormValue("_method")
		gotUnderWarranty = r.FormValue("under_warranty")
		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(file)
		gotImage = buf.Bytes()
		_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.Vehicle]{Data: domain.Vehicle{ID: 3}})
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	image := &service.VehicleImage{
		Filename:    "hilux.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	}
	_, err := svc.Update(context.Background(), 3, vehicleRequest(), image)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "PUT", gotOverride)
	assert.Equal(t, "0", gotUnderWarranty)
	assert.Equal(t, []byte("jpeg-bytes"), gotImage)
}

func TestVehicleExportPassesThroughBackendFile(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vehicles/export", r.URL.Path)
		assert.Equal(t, "pdf", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	data, contentType, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestVehicleExportRejectsUnknownFormat(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())

	_, _, err := svc.Export(context.Background(), "csv")
	assert.ErrorIs(t, err, service.ErrUnknownExportFormat)
	assert.Zero(t, stub.requestCount())
}

func TestVehicleMutationInvalidatesListCache(t *testing.T) {
	stub := newBackendStub(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(domain.PaginatedResponse[domain.Vehicle]{
				Data:        []domain.Vehicle{{ID: 1}},
				CurrentPage: 1,
				LastPage:    1,
			})
		default:
			_ = json.NewEncoder(w).Encode(domain.APIResponse[domain.Vehicle]{Data: domain.Vehicle{ID: 2}})
		}
	})
	svc := service.NewVehicleService(stub.client(), newTestCache(), zap.NewNop())
	params := &domain.ListParams{Page: 1}

	_, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.requestCount())

	_, err = svc.Create(context.Background(), vehicleRequest(), nil)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 3, stub.requestCount())
}
