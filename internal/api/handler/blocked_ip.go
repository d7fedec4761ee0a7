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

type BlockedIP struct {
	svc *core.BlockedIPService
}

func NewBlockedIP(svc *core.BlockedIPService) *BlockedIP {
	return &BlockedIP{svc: svc}
}

func (h *BlockedIP) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r, "created_at")
	blocks, hasMore, err := h.svc.List(r.Context(), params.Limit, params.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(blocks) > 0 {
		nextCursor = blocks[len(blocks)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, blocks, nextCursor, hasMore)
}

func (h *BlockedIP) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBlockedIP
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cidr, err := req.Normalize()
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	block := &model.BlockedIP{
		ID:        platform.NewID(),
		CIDR:      cidr,
		Reason:    req.Reason,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.svc.Create(r.Context(), block); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, block)
}

func (h *BlockedIP) Delete(w http.ResponseWriter, r *http.Request) {
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
