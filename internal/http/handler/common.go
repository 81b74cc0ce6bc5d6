package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/domain"
	"github.com/parcauto/fleet-dashboard/internal/service"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	errs := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldName := toJSONFieldName(fe.Field())
			errs[fieldName] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusUnprocessableEntity, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: "One or more fields failed validation",
		Errors: errs,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "required_if":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (snake_case)
func toJSONFieldName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	// Collapse runs produced by acronyms like "ID"
	return strings.ReplaceAll(b.String(), "_i_d", "_id")
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// respondServiceError maps service and backend errors onto HTTP responses.
// Backend validation errors pass through with their field messages so forms
// can highlight the offending inputs.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect.")
		return
	case errors.Is(err, service.ErrCommentRequired):
		respondJSON(w, http.StatusUnprocessableEntity, domain.APIError{
			Type:   domain.ErrorTypeValidation,
			Title:  "Validation Error",
			Status: http.StatusUnprocessableEntity,
			Detail: "Un commentaire est obligatoire pour rejeter une opération.",
			Errors: map[string]string{"comment": "Un commentaire est obligatoire pour rejeter une opération."},
		})
		return
	case errors.Is(err, service.ErrImageTooLarge):
		respondWithError(w, http.StatusUnprocessableEntity, "L'image ne doit pas dépasser 5 Mo.")
		return
	case errors.Is(err, service.ErrNotAnImage):
		respondWithError(w, http.StatusUnprocessableEntity, "Le fichier doit être une image.")
		return
	case errors.Is(err, service.ErrUnknownExportFormat):
		respondWithError(w, http.StatusBadRequest, "Format d'export inconnu.")
		return
	case errors.Is(err, service.ErrForecastUnavailable):
		respondWithError(w, http.StatusNotFound, "Aucune prévision disponible.")
		return
	case errors.Is(err, backend.ErrUnauthorized):
		// The backend no longer accepts the session's token
		respondWithError(w, http.StatusUnauthorized, "Session expirée. Veuillez vous reconnecter.")
		return
	}

	if apiErr, ok := backend.AsAPIError(err); ok {
		if apiErr.IsValidation() {
			errs := make(map[string]string, len(apiErr.FieldErrors))
			for field, messages := range apiErr.FieldErrors {
				if len(messages) > 0 {
					errs[field] = messages[0]
				}
			}
			respondJSON(w, http.StatusUnprocessableEntity, domain.APIError{
				Type:   domain.ErrorTypeValidation,
				Title:  "Validation Error",
				Status: http.StatusUnprocessableEntity,
				Detail: apiErr.Message,
				Errors: errs,
			})
			return
		}
		if apiErr.IsNotFound() {
			respondWithError(w, http.StatusNotFound, apiErr.Message)
			return
		}
		if apiErr.Status == http.StatusForbidden {
			respondWithError(w, http.StatusForbidden, apiErr.Message)
			return
		}
		// Any other backend failure surfaces as a gateway error
		respondJSON(w, http.StatusBadGateway, domain.APIError{
			Type:   domain.ErrorTypeUpstream,
			Title:  http.StatusText(http.StatusBadGateway),
			Status: http.StatusBadGateway,
			Detail: apiErr.Message,
		})
		return
	}

	respondWithError(w, http.StatusInternalServerError, "Une erreur interne est survenue.")
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		return domain.ErrorTypeValidation
	case http.StatusBadGateway:
		return domain.ErrorTypeUpstream
	default:
		return domain.ErrorTypeInternal
	}
}
