package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*backend.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(&config.BackendConfig{
		BaseURL:        srv.URL,
		APIKey:         "gateway-key",
		RequestTimeout: 5,
	}, zap.NewNop())
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := backend.NewClient(&config.BackendConfig{}, zap.NewNop())
	assert.Error(t, err)
}

func TestGetJSONSendsAuthHeaders(t *testing.T) {
	var gotAuth, gotKey, gotAccept string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-API-Key")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	ctx := backend.WithToken(context.Background(), "bearer-123")
	var out map[string]string
	err := client.GetJSON(ctx, "/dashboard", nil, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer bearer-123", gotAuth)
	assert.Equal(t, "gateway-key", gotKey)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "ok", out["status"])
}

func TestGetJSONWithoutTokenOmitsAuthorization(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{})
	})

	var out map[string]string
	err := client.GetJSON(context.Background(), "/health", nil, &out)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestPostJSONEncodesBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]int{"id": 7})
	})

	var out map[string]int
	err := client.PostJSON(context.Background(), "/vehicles", map[string]string{"name": "Hilux"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Hilux", gotBody["name"])
	assert.Equal(t, 7, out["id"])
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
	})

	err := client.GetJSON(context.Background(), "/user", nil, &struct{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestValidationErrorCarriesFieldErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"registration_number":["Le champ est obligatoire."]}}`))
	})

	err := client.PostJSON(context.Background(), "/vehicles", map[string]string{}, nil)
	require.Error(t, err)

	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "The given data was invalid.", apiErr.Message)
	assert.Equal(t, []string{"Le champ est obligatoire."}, apiErr.FieldErrors["registration_number"])
}

func TestNotFoundWithoutJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	})

	err := client.GetJSON(context.Background(), "/vehicles/999", nil, &struct{}{})
	require.Error(t, err)

	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, http.StatusText(http.StatusNotFound), apiErr.Message)
}

func TestPostMultipartSendsFieldsAndFile(t *testing.T) {
	var gotMethod, gotOverride, gotName, gotFilename string
	var gotFileSize int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotOverride = r.FormValue("_method")
		gotName = r.FormValue("name")
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotFileSize = header.Size
		_ = json.NewEncoder(w).Encode(map[string]string{})
	})

	file := &backend.Upload{
		FieldName:   "image",
		Filename:    "hilux.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("jpeg-bytes"),
	}
	fields := map[string]string{"_method": "PUT", "name": "Hilux"}
	err := client.PostMultipart(context.Background(), "/vehicles/3", fields, file, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "PUT", gotOverride)
	assert.Equal(t, "Hilux", gotName)
	assert.Equal(t, "hilux.jpg", gotFilename)
	assert.Equal(t, int64(len("jpeg-bytes")), gotFileSize)
}

func TestDownloadReturnsBytesAndContentType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 data"))
	})

	data, contentType, err := client.Download(context.Background(), "/reports/export", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, "%PDF-1.4 data", string(data))
}

func TestHealthCheck(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/up" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	status := client.HealthCheck(context.Background(), "/up")
	assert.Equal(t, "healthy", status.Status)
	assert.Empty(t, status.Error)

	status = client.HealthCheck(context.Background(), "/down")
	assert.Equal(t, "unhealthy", status.Status)
	assert.NotEmpty(t, status.Error)
}

func TestQueryParamsAppended(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]string{})
	})

	params := url.Values{"page": {"2"}, "search": {"toyota"}}
	err := client.GetJSON(context.Background(), "/vehicles", params, &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "page=2&search=toyota", gotQuery)
}
