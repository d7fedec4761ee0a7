package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/edvin/panel/internal/core"
)

func daemonRow(status string, enabled bool) *handlerMockRow {
	return &handlerMockRow{scanFunc: func(dest ...any) error {
		now := time.Now()
		*(dest[0].(*string)) = validID     // ID
		*(dest[1].(*string)) = "apache2"   // Name
		*(dest[2].(*string)) = "webserver" // Kind
		*(dest[3].(*bool)) = enabled       // Enabled
		*(dest[4].(*string)) = status      // Status
		*(dest[5].(**string)) = nil        // StatusMessage
		*(dest[6].(**time.Time)) = nil     // RestartedAt
		*(dest[7].(*time.Time)) = now      // CreatedAt
		*(dest[8].(*time.Time)) = now      // UpdatedAt
		return nil
	}}
}

// --- Restart ---

func TestDaemonRestart_EmptyID(t *testing.T) {
	h := &Daemon{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/daemons//restart", nil)
	r = withChiURLParam(r, "id", "")

	h.Restart(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDaemonRestart_Accepted(t *testing.T) {
	db := &handlerMockDB{}
	h := NewDaemon(core.NewDaemonService(db))

	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(daemonRow("active", true)).Twice()
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, nil).Once()

	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/daemons/"+validID+"/restart", nil)
	r = withChiURLParam(r, "id", validID)

	h.Restart(rec, r)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	db.AssertExpectations(t)
}

func TestDaemonRestart_Disabled(t *testing.T) {
	db := &handlerMockDB{}
	h := NewDaemon(core.NewDaemonService(db))

	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(daemonRow("active", false)).Twice()

	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/daemons/"+validID+"/restart", nil)
	r = withChiURLParam(r, "id", validID)

	h.Restart(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "disabled")
}

func TestDaemonRestart_AlreadyRestarting(t *testing.T) {
	db := &handlerMockDB{}
	h := NewDaemon(core.NewDaemonService(db))

	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(daemonRow("restarting", true)).Twice()

	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/daemons/"+validID+"/restart", nil)
	r = withChiURLParam(r, "id", validID)

	h.Restart(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// --- SetEnabled ---

func TestDaemonSetEnabled_MissingBody(t *testing.T) {
	h := &Daemon{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/daemons/"+validID+"/enabled", map[string]any{})
	r = withChiURLParam(r, "id", validID)

	h.SetEnabled(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}
