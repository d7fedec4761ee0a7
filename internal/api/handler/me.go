package handler

import (
	"net/http"

	mw "github.com/edvin/panel/internal/api/middleware"
	"github.com/edvin/panel/internal/api/request"
	"github.com/edvin/panel/internal/api/response"
	"github.com/edvin/panel/internal/core"
	"github.com/edvin/panel/internal/crypto"
)

// Me serves the authenticated user's own profile, password, and two-factor
// enrollment. Everything here is scoped to the token's subject.
type Me struct {
	users *core.UserService
	auth  *core.AuthService
}

func NewMe(users *core.UserService, auth *core.AuthService) *Me {
	return &Me{users: users, auth: auth}
}

// Get returns the caller's profile.
func (h *Me) Get(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaims(r.Context())

	user, err := h.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

// ChangePassword verifies the current password before setting the new one.
func (h *Me) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaims(r.Context())

	var req request.ChangePassword
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	if !crypto.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		response.WriteError(w, http.StatusForbidden, "current password is incorrect")
		return
	}

	if err := h.users.SetPassword(r.Context(), user.ID, req.NewPassword); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type twoFASetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// SetupTwoFA generates a fresh TOTP secret for the caller. Enrollment is not
// complete until EnableTwoFA verifies a code against it.
func (h *Me) SetupTwoFA(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaims(r.Context())

	user, err := h.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	secret, url, err := h.auth.SetupTwoFA(r.Context(), user)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, twoFASetupResponse{Secret: secret, OTPAuthURL: url})
}

// EnableTwoFA verifies the submitted code and turns two-factor on.
func (h *Me) EnableTwoFA(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaims(r.Context())

	var req request.EnableTwoFA
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.EnableTwoFA(r.Context(), claims.Subject, req.Code); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DisableTwoFA turns two-factor off and discards the secret.
func (h *Me) DisableTwoFA(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaims(r.Context())

	if err := h.auth.DisableTwoFA(r.Context(), claims.Subject); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
