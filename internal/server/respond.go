package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/claude/repbook/internal/editor"
	"github.com/claude/repbook/internal/models"
	"github.com/claude/repbook/internal/repository"
	"github.com/claude/repbook/internal/transfer"
)

var errConfirmationRequired = errors.New("confirmation required: repeat with ?confirm=true")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, editor.ErrInvalidNumber),
		errors.Is(err, editor.ErrInvalidField),
		errors.Is(err, editor.ErrSetIndexOutOfRange),
		errors.Is(err, transfer.ErrInvalidFormat),
		errors.Is(err, transfer.ErrInvalidPolicy),
		errors.Is(err, transfer.ErrUnknownKey),
		errors.Is(err, errConfirmationRequired):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, editor.ErrNotInSession),
		errors.Is(err, transfer.ErrNothingToExport):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateID),
		errors.Is(err, editor.ErrAlreadyPresent):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", models.ErrValidation, err)
	}
	return nil
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}
