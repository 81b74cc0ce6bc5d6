package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
	logger         *zap.Logger
}

func NewVehicleHandler(vehicleService *service.VehicleService, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

// List godoc
// @Summary List vehicles
// @Description Get paginated list of vehicles with optional filters
// @Tags Vehicles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param search query string false "Search by registration, brand or model"
// @Param status query string false "Filter by status" Enums(active, maintenance, out_of_service)
// @Param vehicle_type_id query int false "Filter by vehicle type"
// @Success 200 {object} domain.PaginatedResponse[domain.Vehicle]
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /vehicles [get]
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.vehicleService.List(r.Context(), listParams(r, "status", "vehicle_type_id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Get godoc
// @Summary Get vehicle
// @Tags Vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} domain.Vehicle
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// Create godoc
// @Summary Create vehicle
// @Description Register a vehicle, as JSON or as multipart form data with an optional photo
// @Tags Vehicles
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param vehicle body domain.VehicleRequest true "Vehicle payload"
// @Success 201 {object} domain.Vehicle
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, image, err := h.parseVehicleRequest(r)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(r.Context(), req, image)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

// Update godoc
// @Summary Update vehicle
// @Tags Vehicles
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param vehicle body domain.VehicleRequest true "Vehicle payload"
// @Success 200 {object} domain.Vehicle
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	req, image, err := h.parseVehicleRequest(r)
	if err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	vehicle, err := h.vehicleService.Update(r.Context(), id, req, image)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vehicle)
}

// Delete godoc
// @Summary Delete vehicle
// @Tags Vehicles
// @Param id path int true "Vehicle ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Analytics godoc
// @Summary Vehicle analytics
// @Description Fleet composition and status aggregates for the vehicles page
// @Tags Vehicles
// @Produce json
// @Success 200 {object} domain.VehicleAnalytics
// @Security CookieAuth
// @Router /vehicles/analytics [get]
func (h *VehicleHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.vehicleService.Analytics(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

// Export godoc
// @Summary Export vehicles
// @Description Download the vehicle list as rendered by the fleet backend
// @Tags Vehicles
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param format query string false "Export format" Enums(excel, pdf) default(excel)
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Router /vehicles/export [get]
func (h *VehicleHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	data, contentType, err := h.vehicleService.Export(r.Context(), format)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	ext := "xlsx"
	if format == "pdf" {
		ext = "pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="vehicules.`+ext+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ListTypes godoc
// @Summary List vehicle types
// @Tags Vehicles
// @Produce json
// @Success 200 {array} domain.VehicleType
// @Security CookieAuth
// @Router /vehicle-types [get]
func (h *VehicleHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.vehicleService.ListTypes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// parseVehicleRequest accepts either a JSON body or a multipart form with an
// optional image part. The multipart path is what the browser uses when a
// photo is attached.
func (h *VehicleHandler) parseVehicleRequest(r *http.Request) (*domain.VehicleRequest, *service.VehicleImage, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(service.MaxImageSize + 1<<20); err != nil {
			return nil, nil, err
		}

		req := &domain.VehicleRequest{
			RegistrationNumber: r.FormValue("registration_number"),
			Brand:              r.FormValue("brand"),
			Model:              r.FormValue("model"),
			VehicleTypeID:      formInt(r, "vehicle_type_id"),
			Year:               formInt(r, "year"),
			AcquisitionDate:    r.FormValue("acquisition_date"),
			Status:             r.FormValue("status"),
			UnderWarranty:      formBool(r, "under_warranty"),
			WarrantyEndDate:    r.FormValue("warranty_end_date"),
		}
		if err := validate.Struct(req); err != nil {
			return nil, nil, err
		}

		image, err := readImagePart(r)
		if err != nil {
			return nil, nil, err
		}
		return req, image, nil
	}

	var req domain.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, err
	}
	if err := validate.Struct(&req); err != nil {
		return nil, nil, err
	}
	return &req, nil, nil
}

func readImagePart(r *http.Request) (*service.VehicleImage, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	return &service.VehicleImage{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Data:        data,
	}, nil
}

func partContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func formInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.FormValue(name))
	if err != nil {
		return 0
	}
	return value
}

func formBool(r *http.Request, name string) bool {
	switch r.FormValue(name) {
	case "1", "true", "on":
		return true
	}
	return false
}
