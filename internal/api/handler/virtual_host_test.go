package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- Create ---

func TestVirtualHostCreate_EmptyDomainID(t *testing.T) {
	h := &VirtualHost{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/domains//virtual-hosts", map[string]any{
		"document_root": "/var/www/html",
	})
	r = withChiURLParam(r, "domainID", "")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVirtualHostCreate_MissingDocumentRoot(t *testing.T) {
	h := &VirtualHost{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/domains/"+validID+"/virtual-hosts", map[string]any{})
	r = withChiURLParam(r, "domainID", validID)

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestVirtualHostCreate_InvalidAlias(t *testing.T) {
	h := &VirtualHost{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/domains/"+validID+"/virtual-hosts", map[string]any{
		"document_root":  "/var/www/html",
		"server_aliases": []string{"bad_alias!"},
	})
	r = withChiURLParam(r, "domainID", validID)

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "not a valid hostname")
}

// --- Toggles ---

func TestVirtualHostSetModSecurity_MissingEnabled(t *testing.T) {
	h := &VirtualHost{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/virtual-hosts/"+validID+"/modsecurity", map[string]any{})
	r = withChiURLParam(r, "id", validID)

	h.SetModSecurity(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestVirtualHostSetAutoSSL_MissingEnabled(t *testing.T) {
	h := &VirtualHost{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/virtual-hosts/"+validID+"/autossl", map[string]any{})
	r = withChiURLParam(r, "id", validID)

	h.SetAutoSSL(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVirtualHostGet_EmptyID(t *testing.T) {
	h := &VirtualHost{}
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/virtual-hosts/", nil)
	r = withChiURLParam(r, "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
