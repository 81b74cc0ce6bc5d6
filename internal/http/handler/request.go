package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/parcauto/fleet-dashboard/internal/domain"
)

// decodeAndValidate parses a JSON request body and runs struct validation.
// Callers respond with respondValidationError when the returned error is a
// validator.ValidationErrors.
func decodeAndValidate(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return validate.Struct(target)
}

// urlParamInt reads a numeric chi URL parameter
func urlParamInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return value, nil
}

// queryInt reads an optional numeric query parameter, zero when absent
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// listParams builds shared list parameters from the request query. Only the
// named filters are forwarded; anything else in the query is dropped.
func listParams(r *http.Request, filterNames ...string) *domain.ListParams {
	q := r.URL.Query()
	params := &domain.ListParams{
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
		Search:  q.Get("search"),
	}
	for _, name := range filterNames {
		if value := q.Get(name); value != "" {
			if params.Filters == nil {
				params.Filters = make(map[string]string)
			}
			params.Filters[name] = value
		}
	}
	return params
}
