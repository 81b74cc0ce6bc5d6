package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parcauto/fleet-dashboard/internal/prefs"
	"github.com/parcauto/fleet-dashboard/internal/session"
	"go.uber.org/zap"
)

// PrefsHandler serves per-user UI preferences stored on the gateway
type PrefsHandler struct {
	store  *prefs.Store
	logger *zap.Logger
}

func NewPrefsHandler(store *prefs.Store, logger *zap.Logger) *PrefsHandler {
	return &PrefsHandler{
		store:  store,
		logger: logger,
	}
}

type prefValue struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// List godoc
// @Summary List preferences
// @Description All stored UI preferences of the session user
// @Tags Preferences
// @Produce json
// @Success 200 {array} prefs.Preference
// @Security CookieAuth
// @Router /preferences [get]
func (h *PrefsHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No session")
		return
	}

	stored, err := h.store.All(userCtx.UserID)
	if err != nil {
		h.logger.Error("failed to list preferences", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Une erreur interne est survenue.")
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// Get godoc
// @Summary Get preference
// @Tags Preferences
// @Produce json
// @Param key path string true "Preference key"
// @Success 200 {object} handler.prefValue
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Router /preferences/{key} [get]
func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No session")
		return
	}
	key := chi.URLParam(r, "key")

	value, err := h.store.Get(userCtx.UserID, key)
	if err != nil {
		if errors.Is(err, prefs.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Preference not found")
			return
		}
		h.logger.Error("failed to read preference", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Une erreur interne est survenue.")
		return
	}
	respondJSON(w, http.StatusOK, prefValue{Key: key, Value: json.RawMessage(value)})
}

// Set godoc
// @Summary Store preference
// @Description Store a JSON value under a key for the session user
// @Tags Preferences
// @Accept json
// @Param key path string true "Preference key"
// @Param value body object true "Any JSON value"
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Router /preferences/{key} [put]
func (h *PrefsHandler) Set(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No session")
		return
	}
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil || !json.Valid(body) {
		respondWithError(w, http.StatusBadRequest, "Value must be valid JSON")
		return
	}

	if err := h.store.Set(userCtx.UserID, key, string(body)); err != nil {
		h.logger.Error("failed to store preference", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Une erreur interne est survenue.")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Delete godoc
// @Summary Delete preference
// @Tags Preferences
// @Param key path string true "Preference key"
// @Success 204 "No Content"
// @Security CookieAuth
// @Router /preferences/{key} [delete]
func (h *PrefsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := session.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No session")
		return
	}
	key := chi.URLParam(r, "key")

	if err := h.store.Delete(userCtx.UserID, key); err != nil {
		h.logger.Error("failed to delete preference", zap.String("key", key), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Une erreur interne est survenue.")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
