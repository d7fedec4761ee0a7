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

type VirtualHost struct {
	svc     *core.VirtualHostService
	domains *core.DomainService
}

func NewVirtualHost(svc *core.VirtualHostService, domains *core.DomainService) *VirtualHost {
	return &VirtualHost{svc: svc, domains: domains}
}

func (h *VirtualHost) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r, "created_at")
	vhosts, hasMore, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(vhosts) > 0 {
		nextCursor = vhosts[len(vhosts)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, vhosts, nextCursor, hasMore)
}

func (h *VirtualHost) Create(w http.ResponseWriter, r *http.Request) {
	domainID, err := request.RequireID(chi.URLParam(r, "domainID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateVirtualHost
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.domains.GetByID(r.Context(), domainID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	phpVersion := req.PHPVersion
	if phpVersion == "" {
		phpVersion = "8.3"
	}

	now := time.Now()
	vhost := &model.VirtualHost{
		ID:            platform.NewID(),
		DomainID:      domainID,
		ServerAliases: req.ServerAliases,
		DocumentRoot:  req.DocumentRoot,
		PHPVersion:    phpVersion,
		SSLStatus:     model.SSLNone,
		Status:        model.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.svc.Create(r.Context(), vhost); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, vhost)
}

func (h *VirtualHost) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	vhost, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, vhost)
}

func (h *VirtualHost) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateVirtualHost
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	vhost, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	aliases := vhost.ServerAliases
	if req.ServerAliases != nil {
		aliases = req.ServerAliases
	}
	docRoot := vhost.DocumentRoot
	if req.DocumentRoot != nil {
		docRoot = *req.DocumentRoot
	}
	phpVersion := vhost.PHPVersion
	if req.PHPVersion != nil {
		phpVersion = *req.PHPVersion
	}

	if err := h.svc.Update(r.Context(), id, aliases, docRoot, phpVersion); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	vhost.ServerAliases = aliases
	vhost.DocumentRoot = docRoot
	vhost.PHPVersion = phpVersion
	response.WriteJSON(w, http.StatusOK, vhost)
}

func (h *VirtualHost) SetModSecurity(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.SetToggle
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SetModSecurity(r.Context(), id, *req.Enabled); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VirtualHost) SetAutoSSL(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.SetToggle
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.SetAutoSSL(r.Context(), id, *req.Enabled); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VirtualHost) Delete(w http.ResponseWriter, r *http.Request) {
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
