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

type EmailForwarder struct {
	svc      *core.EmailForwarderService
	accounts *core.EmailAccountService
}

func NewEmailForwarder(svc *core.EmailForwarderService, accounts *core.EmailAccountService) *EmailForwarder {
	return &EmailForwarder{svc: svc, accounts: accounts}
}

func (h *EmailForwarder) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := request.RequireID(chi.URLParam(r, "accountID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := request.ParseListParams(r, "created_at")
	forwarders, hasMore, err := h.svc.ListByAccount(r.Context(), accountID, params.Limit, params.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(forwarders) > 0 {
		nextCursor = forwarders[len(forwarders)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, forwarders, nextCursor, hasMore)
}

func (h *EmailForwarder) Create(w http.ResponseWriter, r *http.Request) {
	accountID, err := request.RequireID(chi.URLParam(r, "accountID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateEmailForwarder
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.accounts.GetByID(r.Context(), accountID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	now := time.Now()
	fwd := &model.EmailForwarder{
		ID:             platform.NewID(),
		EmailAccountID: accountID,
		Destination:    req.Destination,
		KeepCopy:       req.KeepCopy,
		Status:         model.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.svc.Create(r.Context(), fwd); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, fwd)
}

func (h *EmailForwarder) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateEmailForwarder
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	fwd, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	if req.Destination != nil {
		fwd.Destination = *req.Destination
	}
	if req.KeepCopy != nil {
		fwd.KeepCopy = *req.KeepCopy
	}

	if err := h.svc.Update(r.Context(), fwd); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, fwd)
}

func (h *EmailForwarder) Delete(w http.ResponseWriter, r *http.Request) {
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
