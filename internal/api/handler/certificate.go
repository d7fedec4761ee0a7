package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/api/response"
	"github.com/edvin/panel/internal/core"
	"github.com/edvin/panel/internal/model"
	"github.com/edvin/panel/internal/platform"
)

type Certificate struct {
	svc     *core.CertificateService
	domains *core.DomainService
	vhosts  *core.VirtualHostService
}

func NewCertificate(svc *core.CertificateService, domains *core.DomainService, vhosts *core.VirtualHostService) *Certificate {
	return &Certificate{svc: svc, domains: domains, vhosts: vhosts}
}

func (h *Certificate) ListByDomain(w http.ResponseWriter, r *http.Request) {
	domainID, err := request.RequireID(chi.URLParam(r, "domainID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := request.ParseListParams(r, "created_at")
	certs, hasMore, err := h.svc.ListByDomain(r.Context(), domainID, params.Limit, params.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(certs) > 0 {
		nextCursor = certs[len(certs)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, certs, nextCursor, hasMore)
}

// Upload installs a custom certificate on a domain. The previous active
// certificate for the domain is deactivated, not removed.
func (h *Certificate) Upload(w http.ResponseWriter, r *http.Request) {
	domainID, err := request.RequireID(chi.URLParam(r, "domainID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UploadCertificate
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.domains.GetByID(r.Context(), domainID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	parsed, err := core.ParseCertificatePEM(req.CertPEM, req.KeyPEM)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	notBefore := parsed.NotBefore
	notAfter := parsed.NotAfter
	cert := &model.Certificate{
		ID:        platform.NewID(),
		DomainID:  domainID,
		Type:      model.CertTypeCustom,
		CertPEM:   req.CertPEM,
		KeyPEM:    req.KeyPEM,
		ChainPEM:  req.ChainPEM,
		Subject:   parsed.Subject.CommonName,
		Issuer:    parsed.Issuer.CommonName,
		NotBefore: &notBefore,
		NotAfter:  &notAfter,
		Status:    model.StatusActive,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.svc.Create(r.Context(), cert); err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.vhosts.SetSSLStatusByDomain(r.Context(), domainID, model.SSLIssued); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, cert)
}

func (h *Certificate) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cert, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, cert)
}

func (h *Certificate) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
