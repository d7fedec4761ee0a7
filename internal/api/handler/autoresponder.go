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

// Autoresponder manages the single auto-reply configuration per mailbox.
type Autoresponder struct {
	svc      *core.AutoresponderService
	accounts *core.EmailAccountService
}

func NewAutoresponder(svc *core.AutoresponderService, accounts *core.EmailAccountService) *Autoresponder {
	return &Autoresponder{svc: svc, accounts: accounts}
}

func (h *Autoresponder) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := request.RequireID(chi.URLParam(r, "accountID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ar, err := h.svc.GetByAccountID(r.Context(), accountID)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, ar)
}

func (h *Autoresponder) Put(w http.ResponseWriter, r *http.Request) {
	accountID, err := request.RequireID(chi.URLParam(r, "accountID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.PutAutoresponder
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.accounts.GetByID(r.Context(), accountID); err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		response.WriteError(w, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	now := time.Now()
	ar := &model.Autoresponder{
		ID:             platform.NewID(),
		EmailAccountID: accountID,
		Subject:        req.Subject,
		Body:           req.Body,
		StartDate:      startDate,
		EndDate:        endDate,
		Enabled:        req.Enabled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.svc.Upsert(r.Context(), ar); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, ar)
}

func (h *Autoresponder) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, err := request.RequireID(chi.URLParam(r, "accountID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), accountID); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
