package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/creator-studio/internal/config"
	"github.com/jonathan/creator-studio/internal/query"
)

// newTestServer builds a server without backing services. Unit tests only
// exercise paths that return before touching the database; everything else
// is covered by the integration tests.
func newTestServer() *Server {
	return &Server{
		jwtService: NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}),
		pageSize:   query.DefaultLimit,
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoutes_HealthIsPublic(t *testing.T) {
	s := newTestServer()
	handler := s.routes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_APIRequiresToken(t *testing.T) {
	s := newTestServer()
	handler := s.routes()

	paths := []string{
		"/creators",
		"/creators/3e14f9c2-9f63-4e16-8d3b-2a4b6f9ad111",
		"/creators/3e14f9c2-9f63-4e16-8d3b-2a4b6f9ad111/style-profile",
		"/style-examples/3e14f9c2-9f63-4e16-8d3b-2a4b6f9ad111",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "expected 401 for %s without a token", path)
	}
}

func TestWithCORS_Preflight(t *testing.T) {
	s := newTestServer()
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the inner handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/creators", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
