package handler

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/ssh"

	"github.com/edvin/panel/internal/api/response"
	"github.com/edvin/panel/internal/core"
)

// parseSSHKey parses an SSH public key and returns its SHA256 fingerprint.
func parseSSHKey(publicKey string) (string, error) {
	pubKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(publicKey))
	if err != nil {
		return "", err
	}
	return ssh.FingerprintSHA256(pubKey), nil
}

// writeServiceError maps service failures onto HTTP status codes. Conflicts
// surface as 409, everything else as 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrConflict) {
		response.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	response.WriteError(w, http.StatusInternalServerError, err.Error())
}
