package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

type SparePartHandler struct {
	sparePartService *service.SparePartService
	logger           *zap.Logger
}

func NewSparePartHandler(sparePartService *service.SparePartService, logger *zap.Logger) *SparePartHandler {
	return &SparePartHandler{
		sparePartService: sparePartService,
		logger:           logger,
	}
}

// List godoc
// @Summary List spare parts
// @Description Get paginated list of inventory items with optional filters
// @Tags SpareParts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param search query string false "Search by code or name"
// @Param category query string false "Filter by category"
// @Param low_stock query string false "Only parts below their minimum stock" Enums(1)
// @Success 200 {object} domain.PaginatedResponse[domain.SparePart]
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts [get]
func (h *SparePartHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.sparePartService.List(r.Context(), listParams(r, "category", "low_stock"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Get godoc
// @Summary Get spare part
// @Tags SpareParts
// @Produce json
// @Param id path int true "Spare part ID"
// @Success 200 {object} domain.SparePart
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts/{id} [get]
func (h *SparePartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid spare part ID")
		return
	}

	part, err := h.sparePartService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, part)
}

// Create godoc
// @Summary Create spare part
// @Tags SpareParts
// @Accept json
// @Produce json
// @Param part body domain.SparePartRequest true "Spare part payload"
// @Success 201 {object} domain.SparePart
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts [post]
func (h *SparePartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SparePartRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	part, err := h.sparePartService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, part)
}

// Update godoc
// @Summary Update spare part
// @Tags SpareParts
// @Accept json
// @Produce json
// @Param id path int true "Spare part ID"
// @Param part body domain.SparePartRequest true "Spare part payload"
// @Success 200 {object} domain.SparePart
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts/{id} [put]
func (h *SparePartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid spare part ID")
		return
	}

	var req domain.SparePartRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	part, err := h.sparePartService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, part)
}

// Delete godoc
// @Summary Delete spare part
// @Tags SpareParts
// @Param id path int true "Spare part ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts/{id} [delete]
func (h *SparePartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid spare part ID")
		return
	}

	if err := h.sparePartService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// UpdateStock godoc
// @Summary Adjust stock
// @Description Add to or remove from a part's quantity in stock
// @Tags SpareParts
// @Accept json
// @Produce json
// @Param id path int true "Spare part ID"
// @Param adjustment body domain.StockUpdateRequest true "Stock adjustment"
// @Success 200 {object} service.StockAdjustment
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts/{id}/update-stock [post]
func (h *SparePartHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid spare part ID")
		return
	}

	var req domain.StockUpdateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	adjustment, err := h.sparePartService.UpdateStock(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, adjustment)
}

// LowStock godoc
// @Summary Low stock alerts
// @Description Parts whose quantity fell under their minimum
// @Tags SpareParts
// @Produce json
// @Success 200 {array} domain.SparePart
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /spare-parts/alerts/low-stock [get]
func (h *SparePartHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	parts, err := h.sparePartService.LowStock(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, parts)
}
