package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
	logger             *zap.Logger
}

func NewMaintenanceHandler(maintenanceService *service.MaintenanceService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// List godoc
// @Summary List maintenance operations
// @Description Get paginated list of operations with optional filters
// @Tags Operations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param search query string false "Search by description or vehicle"
// @Param status query string false "Filter by status" Enums(pending, validated, rejected)
// @Param vehicle_id query int false "Filter by vehicle"
// @Param technician_id query int false "Filter by technician"
// @Param date_from query string false "Operations on or after this date (YYYY-MM-DD)"
// @Param date_to query string false "Operations on or before this date (YYYY-MM-DD)"
// @Success 200 {object} domain.PaginatedResponse[domain.MaintenanceOperation]
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations [get]
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	params := listParams(r, "status", "vehicle_id", "technician_id", "date_from", "date_to")
	page, err := h.maintenanceService.List(r.Context(), params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Planned godoc
// @Summary List planned operations
// @Description Upcoming scheduled interventions
// @Tags Operations
// @Produce json
// @Success 200 {array} domain.MaintenanceOperation
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations/planned [get]
func (h *MaintenanceHandler) Planned(w http.ResponseWriter, r *http.Request) {
	operations, err := h.maintenanceService.Planned(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, operations)
}

// PendingValidations godoc
// @Summary List pending validations
// @Description Operations awaiting a chief's decision
// @Tags Operations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} domain.PaginatedResponse[domain.MaintenanceOperation]
// @Failure 403 {object} domain.APIError
// @Security CookieAuth
// @Router /validations/pending [get]
func (h *MaintenanceHandler) PendingValidations(w http.ResponseWriter, r *http.Request) {
	page, err := h.maintenanceService.PendingValidations(r.Context(), listParams(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Get godoc
// @Summary Get operation
// @Tags Operations
// @Produce json
// @Param id path int true "Operation ID"
// @Success 200 {object} domain.MaintenanceOperation
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations/{id} [get]
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	operation, err := h.maintenanceService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, operation)
}

// Create godoc
// @Summary Create operation
// @Description Record a maintenance operation in pending status
// @Tags Operations
// @Accept json
// @Produce json
// @Param operation body domain.MaintenanceOperationRequest true "Operation payload"
// @Success 201 {object} domain.MaintenanceOperation
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations [post]
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.MaintenanceOperationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	operation, err := h.maintenanceService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, operation)
}

// Update godoc
// @Summary Update operation
// @Description Modify a pending operation
// @Tags Operations
// @Accept json
// @Produce json
// @Param id path int true "Operation ID"
// @Param operation body domain.MaintenanceOperationRequest true "Operation payload"
// @Success 200 {object} domain.MaintenanceOperation
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations/{id} [put]
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	var req domain.MaintenanceOperationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	operation, err := h.maintenanceService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, operation)
}

// Delete godoc
// @Summary Delete operation
// @Tags Operations
// @Param id path int true "Operation ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations/{id} [delete]
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	if err := h.maintenanceService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Validate godoc
// @Summary Validate or reject operation
// @Description Chief decision on a pending operation; rejections require a comment
// @Tags Operations
// @Accept json
// @Produce json
// @Param id path int true "Operation ID"
// @Param decision body domain.ValidationRequest true "Decision payload"
// @Success 200 {object} domain.MaintenanceOperation
// @Failure 403 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /maintenance-operations/{id}/validate [post]
func (h *MaintenanceHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid operation ID")
		return
	}

	var req domain.ValidationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	operation, err := h.maintenanceService.Validate(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, operation)
}

// ListTypes godoc
// @Summary List maintenance types
// @Tags Operations
// @Produce json
// @Success 200 {array} domain.MaintenanceType
// @Security CookieAuth
// @Router /maintenance-types [get]
func (h *MaintenanceHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.maintenanceService.ListTypes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}
