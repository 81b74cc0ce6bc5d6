package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
	"github.com/parcauto/fleet-dashboard/internal/session"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			respondValidationError(w, err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	signed, expiresAt, err := h.sessions.Issue(&result.User, result.Token)
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Une erreur interne est survenue.")
		return
	}

	h.sessions.SetCookie(w, signed, expiresAt)
	respondJSON(w, http.StatusOK, result.User)
}

// Logout godoc
// @Summary Log out
// @Description Revoke the backend token and clear the session cookie
// @Tags Auth
// @Produce json
// @Success 204 "No Content"
// @Security CookieAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(r.Context())
	h.sessions.ClearCookie(w)
	respondJSON(w, http.StatusNoContent, nil)
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} domain.APIError
// @Security CookieAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
