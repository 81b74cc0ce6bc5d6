package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"go.uber.org/zap"
)

// UserHandler serves staff management. Every route here is mounted behind
// the chief gate.
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List godoc
// @Summary List staff
// @Description Get paginated list of staff members with optional filters
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Param search query string false "Search by name, email or employee ID"
// @Param role query string false "Filter by role" Enums(chief, technician)
// @Param is_active query string false "Filter by active state" Enums(0, 1)
// @Success 200 {object} domain.PaginatedResponse[domain.User]
// @Failure 403 {object} domain.APIError
// @Security CookieAuth
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.userService.List(r.Context(), listParams(r, "role", "is_active"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Get godoc
// @Summary Get staff member
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Create godoc
// @Summary Create staff member
// @Tags Users
// @Accept json
// @Produce json
// @Param user body domain.UserRequest true "User payload"
// @Success 201 {object} domain.User
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// Update godoc
// @Summary Update staff member
// @Description Modify a staff member; an empty password keeps the current one
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body domain.UserRequest true "User payload"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Security CookieAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req domain.UserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete staff member
// @Tags Users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Technicians godoc
// @Summary List active technicians
// @Description Selector data for the operation form
// @Tags Users
// @Produce json
// @Success 200 {array} domain.User
// @Security CookieAuth
// @Router /technicians [get]
func (h *UserHandler) Technicians(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.userService.Technicians(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, technicians)
}
