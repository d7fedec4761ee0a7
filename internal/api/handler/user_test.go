package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edvin/panel/internal/core"
)

// --- Create ---

func TestUserCreate_InvalidJSON(t *testing.T) {
	h := &User{}
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/users", "{bad json")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestUserCreate_MissingEmail(t *testing.T) {
	h := &User{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/users", map[string]any{
		"password": "hunter2hunter2",
		"role":     "user",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestUserCreate_InvalidRole(t *testing.T) {
	h := &User{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/users", map[string]any{
		"email":    "new@example.com",
		"password": "hunter2hunter2",
		"role":     "superuser",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Update ---

func TestUserUpdate_SelfDemotion(t *testing.T) {
	db := &handlerMockDB{}
	h := NewUser(core.NewUserService(db))

	now := time.Now()
	getRow := &handlerMockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = validID       // ID
		*(dest[1].(*string)) = "a@b.com"     // Email
		*(dest[2].(*string)) = "hash"        // PasswordHash
		*(dest[3].(**string)) = nil          // DisplayName
		*(dest[4].(*string)) = "admin"       // Role
		*(dest[5].(*string)) = "active"      // Status
		*(dest[6].(*bool)) = false           // TwoFAEnabled
		*(dest[7].(**string)) = nil          // TOTPSecret
		*(dest[8].(**time.Time)) = nil       // LastLoginAt
		*(dest[9].(*time.Time)) = now        // CreatedAt
		*(dest[10].(*time.Time)) = now       // UpdatedAt
		return nil
	}}
	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(getRow).Once()

	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/users/"+validID, map[string]any{
		"role": "user",
	})
	r = withChiURLParam(r, "id", validID)
	r = withAdminClaims(r, validID)

	h.Update(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "cannot change your own role")
}

// --- Suspend / Delete self-guards ---

func TestUserSuspend_Self(t *testing.T) {
	h := &User{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/users/"+validID+"/suspend", nil)
	r = withChiURLParam(r, "id", validID)
	r = withAdminClaims(r, validID)

	h.Suspend(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "cannot suspend your own account")
}

func TestUserDelete_Self(t *testing.T) {
	h := &User{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodDelete, "/users/"+validID, nil)
	r = withChiURLParam(r, "id", validID)
	r = withAdminClaims(r, validID)

	h.Delete(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "cannot delete your own account")
}

func TestUserGet_EmptyID(t *testing.T) {
	h := &User{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/users/", nil)
	r = withChiURLParam(r, "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
