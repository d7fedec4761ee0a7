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

type DatabaseUser struct {
	svc       *core.DatabaseUserService
	databases *core.DatabaseService
}

func NewDatabaseUser(svc *core.DatabaseUserService, databases *core.DatabaseService) *DatabaseUser {
	return &DatabaseUser{svc: svc, databases: databases}
}

func (h *DatabaseUser) List(w http.ResponseWriter, r *http.Request) {
	params := request.ParseListParams(r, "created_at")
	users, hasMore, err := h.svc.List(r.Context(), params)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(users) > 0 {
		nextCursor = users[len(users)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, users, nextCursor, hasMore)
}

func (h *DatabaseUser) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDatabaseUser
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.DatabaseID != nil {
		if _, err := h.databases.GetByID(r.Context(), *req.DatabaseID); err != nil {
			response.WriteError(w, http.StatusBadRequest, "database not found")
			return
		}
	}

	privileges := req.Privileges
	if len(privileges) == 0 {
		privileges = []string{"all"}
	}

	now := time.Now()
	user := &model.DatabaseUser{
		ID:         platform.NewID(),
		DatabaseID: req.DatabaseID,
		Username:   req.Username,
		Privileges: privileges,
		Status:     model.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.svc.Create(r.Context(), user, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user)
}

func (h *DatabaseUser) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

func (h *DatabaseUser) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateDatabaseUser
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	databaseID := user.DatabaseID
	if req.DatabaseID != nil {
		if *req.DatabaseID == "" {
			databaseID = nil
		} else {
			if _, err := h.databases.GetByID(r.Context(), *req.DatabaseID); err != nil {
				response.WriteError(w, http.StatusBadRequest, "database not found")
				return
			}
			databaseID = req.DatabaseID
		}
	}

	privileges := user.Privileges
	if req.Privileges != nil {
		privileges = req.Privileges
	}

	if err := h.svc.Update(r.Context(), id, databaseID, privileges); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Password != nil {
		if err := h.svc.SetPassword(r.Context(), id, *req.Password); err != nil {
			response.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	user, err = h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

func (h *DatabaseUser) Delete(w http.ResponseWriter, r *http.Request) {
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
