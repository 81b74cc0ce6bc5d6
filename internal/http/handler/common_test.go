package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJSONFieldName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RegistrationNumber", "registration_number"},
		{"VehicleTypeID", "vehicle_type_id"},
		{"Brand", "brand"},
		{"UnderWarranty", "under_warranty"},
		{"EmployeeID", "employee_id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toJSONFieldName(tt.in))
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(w.Body).Decode(&apiErr))
	return apiErr
}

func TestRespondServiceErrorInvalidCredentials(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, service.ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, domain.ErrorTypeUnauthorized, apiErr.Type)
	assert.Equal(t, "Email ou mot de passe incorrect.", apiErr.Detail)
}

func TestRespondServiceErrorCommentRequired(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, service.ErrCommentRequired)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Errors, "comment")
}

func TestRespondServiceErrorBackendValidationPassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, &backend.APIError{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		FieldErrors: map[string][]string{
			"registration_number": {"Ce numéro est déjà enregistré."},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, "Ce numéro est déjà enregistré.", apiErr.Errors["registration_number"])
}

func TestRespondServiceErrorNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, &backend.APIError{Status: http.StatusNotFound, Message: "Véhicule introuvable."})

	assert.Equal(t, http.StatusNotFound, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, domain.ErrorTypeNotFound, apiErr.Type)
}

func TestRespondServiceErrorBackendFailureIsUpstream(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, &backend.APIError{Status: http.StatusInternalServerError, Message: "Server Error"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, domain.ErrorTypeUpstream, apiErr.Type)
}

func TestRespondServiceErrorExpiredBackendToken(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, &backend.APIError{Status: http.StatusUnauthorized, Message: "Unauthenticated."})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, "Session expirée. Veuillez vous reconnecter.", apiErr.Detail)
}

func TestRespondServiceErrorUnknownError(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	apiErr := decodeError(t, w)
	assert.Equal(t, domain.ErrorTypeInternal, apiErr.Type)
}

func TestRespondValidationError(t *testing.T) {
	req := &domain.VehicleRequest{
		Brand:         "Toyota",
		Model:         "Hilux",
		Status:        "active",
		VehicleTypeID: 1,
		UnderWarranty: true,
	}
	err := validate.Struct(req)
	require.Error(t, err)

	w := httptest.NewRecorder()
	respondValidationError(w, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	apiErr := decodeError(t, w)
	assert.Contains(t, apiErr.Errors, "registration_number")
	assert.Contains(t, apiErr.Errors, "warranty_end_date")
}
