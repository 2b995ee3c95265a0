package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julianstephens/lifetracker/internal/constants"
	apperrors "github.com/julianstephens/lifetracker/internal/errors"
	"github.com/julianstephens/lifetracker/internal/logger"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

type validator interface {
	Validate() error
}

// decode reads a JSON body into v and runs its Validate method, if any.
// Every failure is an ErrValidation.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("Request body is required", err)
		}
		return apperrors.Validation("Invalid request body", err)
	}
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			return apperrors.Validation("Invalid request body", err)
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and a {"detail": ...} body. Server errors
// are logged and never leak their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	detail := apperrors.Detail(err, constants.MessageInternalServerError)

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		detail = constants.MessageInternalServerError
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}
