package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	serviceerrors "github.com/jrsteele09/go-org-service/internal/errors"
)

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorMessage(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, errorResponse{Error: code, Description: description})
}

// writeError maps the service error taxonomy onto stable status categories.
// Clients may rely on the status and error code, never on the message text.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case serviceerrors.Is(err, serviceerrors.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, "invalid_request", err.Error())
	case serviceerrors.Is(err, serviceerrors.ErrAlreadyExists):
		writeErrorMessage(w, http.StatusConflict, "conflict", "resource already exists")
	case serviceerrors.Is(err, serviceerrors.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not_found", "resource not found")
	case serviceerrors.Is(err, serviceerrors.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	case serviceerrors.Is(err, serviceerrors.ErrInvalidToken),
		serviceerrors.Is(err, serviceerrors.ErrInvalidRefresh),
		serviceerrors.Is(err, serviceerrors.ErrRefreshMismatch):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
	case serviceerrors.Is(err, serviceerrors.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, "forbidden", "insufficient rights")
	default:
		// Store failures and anything unclassified. Log the detail, never
		// leak it to the client.
		log.Error().Err(err).Msg("request failed")
		writeErrorMessage(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
