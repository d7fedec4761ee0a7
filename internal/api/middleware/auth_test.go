package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/panel/internal/core"
	"github.com/edvin/panel/internal/model"
)

func newTestAuth() *core.AuthService {
	return core.NewAuthService(nil, "test-secret", "panel-test", "panel")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(newTestAuth())(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/domains", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "missing authorization header", body["error"])
}

func TestAuth_NotBearer(t *testing.T) {
	handler := Auth(newTestAuth())(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/domains", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(newTestAuth())(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/domains", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	auth := newTestAuth()
	token, err := auth.IssueToken(&model.User{ID: "test-user-1", Email: "alice@example.com", Role: model.RoleUser})
	require.NoError(t, err)

	var captured *core.Claims
	handler := Auth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/domains", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "test-user-1", captured.Subject)
	assert.Equal(t, model.RoleUser, captured.Role)
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	claims := &core.Claims{Role: model.RoleUser}
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req = req.WithContext(WithClaims(req.Context(), claims))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_Admin(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	claims := &core.Claims{Role: model.RoleAdmin}
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req = req.WithContext(WithClaims(req.Context(), claims))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_NoClaims(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
