package service_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/parcauto/fleet-dashboard/internal/backend"
	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/query"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// backendStub is a fake fleet backend recording what the services send it
type backendStub struct {
	t        *testing.T
	server   *httptest.Server
	requests int64
	handler  http.HandlerFunc
}

func newBackendStub(t *testing.T, handler http.HandlerFunc) *backendStub {
	t.Helper()
	stub := &backendStub{t: t, handler: handler}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.requests, 1)
		stub.handler(w, r)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *backendStub) client() *backend.Client {
	client, err := backend.NewClient(&config.BackendConfig{
		BaseURL:        s.server.URL,
		RequestTimeout: 5,
	}, zap.NewNop())
	require.NoError(s.t, err)
	return client
}

func (s *backendStub) requestCount() int {
	return int(atomic.LoadInt64(&s.requests))
}

func newTestCache() *query.Cache {
	return query.NewCache(time.Minute, zap.NewNop())
}
