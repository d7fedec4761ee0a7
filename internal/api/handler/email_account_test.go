package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Create ---

func TestEmailAccountCreate_EmptyDomainID(t *testing.T) {
	h := &EmailAccount{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/domains//email-accounts", map[string]any{
		"local_part": "info",
		"password":   "hunter2hunter2",
	})
	r = withChiURLParam(r, "domainID", "")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

func TestEmailAccountCreate_MissingLocalPart(t *testing.T) {
	h := &EmailAccount{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/domains/"+validID+"/email-accounts", map[string]any{
		"password": "hunter2hunter2",
	})
	r = withChiURLParam(r, "domainID", validID)

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestEmailAccountCreate_ShortPassword(t *testing.T) {
	h := &EmailAccount{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/domains/"+validID+"/email-accounts", map[string]any{
		"local_part": "info",
		"password":   "short",
	})
	r = withChiURLParam(r, "domainID", validID)

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Forwarders ---

func TestEmailForwarderUpdate_EmptyID(t *testing.T) {
	h := &EmailForwarder{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/email-forwarders/", map[string]any{
		"keep_copy": true,
	})
	r = withChiURLParam(r, "id", "")

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailForwarderUpdate_InvalidDestination(t *testing.T) {
	h := &EmailForwarder{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/email-forwarders/"+validID, map[string]any{
		"destination": "not-an-email",
	})
	r = withChiURLParam(r, "id", validID)

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestEmailForwarderCreate_InvalidDestination(t *testing.T) {
	h := &EmailForwarder{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/email-accounts/"+validID+"/forwarders", map[string]any{
		"destination": "not-an-email",
	})
	r = withChiURLParam(r, "accountID", validID)

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

// --- Autoresponder ---

func TestAutoresponderPut_MissingSubject(t *testing.T) {
	h := &Autoresponder{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/email-accounts/"+validID+"/autoresponder", map[string]any{
		"body": "Out of office.",
	})
	r = withChiURLParam(r, "accountID", validID)

	h.Put(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestAutoresponderPut_BadDateFormat(t *testing.T) {
	h := &Autoresponder{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/email-accounts/"+validID+"/autoresponder", map[string]any{
		"subject":    "Out of office",
		"body":       "Back next week.",
		"start_date": "01/09/2026",
	})
	r = withChiURLParam(r, "accountID", validID)

	h.Put(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
