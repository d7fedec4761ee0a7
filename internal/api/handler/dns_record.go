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

const defaultTTL = 3600

type DNSRecord struct {
	svc     *core.DNSRecordService
	domains *core.DomainService
}

func NewDNSRecord(svc *core.DNSRecordService, domains *core.DomainService) *DNSRecord {
	return &DNSRecord{svc: svc, domains: domains}
}

func (h *DNSRecord) ListByDomain(w http.ResponseWriter, r *http.Request) {
	domainID, err := request.RequireID(chi.URLParam(r, "domainID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := request.ParseListParams(r, "created_at")
	recordType := r.URL.Query().Get("type")

	records, hasMore, err := h.svc.ListByDomain(r.Context(), domainID, params.Limit, params.Cursor, recordType)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(records) > 0 {
		nextCursor = records[len(records)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, records, nextCursor, hasMore)
}

func (h *DNSRecord) Create(w http.ResponseWriter, r *http.Request) {
	domainID, err := request.RequireID(chi.URLParam(r, "domainID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateDNSRecord
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := request.ValidateDNSRecord(req.Type, req.Name, req.Content, req.Priority); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.domains.GetByID(r.Context(), domainID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	ttl := req.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	now := time.Now()
	rec := &model.DNSRecord{
		ID:        platform.NewID(),
		DomainID:  domainID,
		Type:      req.Type,
		Name:      req.Name,
		Content:   req.Content,
		TTL:       ttl,
		Priority:  req.Priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.svc.Create(r.Context(), rec); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, rec)
}

func (h *DNSRecord) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, rec)
}

func (h *DNSRecord) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateDNSRecord
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	// Validation runs against the record's existing (immutable) type.
	if err := request.ValidateDNSRecord(rec.Type, req.Name, req.Content, req.Priority); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec.Name = req.Name
	rec.Content = req.Content
	rec.Priority = req.Priority
	if req.TTL != 0 {
		rec.TTL = req.TTL
	}

	if err := h.svc.Update(r.Context(), rec); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, rec)
}

func (h *DNSRecord) Delete(w http.ResponseWriter, r *http.Request) {
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
