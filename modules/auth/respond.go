package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/listora/identity/pkg/file"
	"github.com/listora/identity/pkg/validator"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, errorResponse{Error: message, Fields: fields})
}

// writeFlowError maps a flow error onto the HTTP taxonomy. Anything
// unrecognized is an internal error and is reported without detail; the
// handler logs it separately.
func writeFlowError(w http.ResponseWriter, err error) bool {
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		writeError(w, http.StatusBadRequest, "validation failed", verrs.Fields())
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrGoogleIDLinked),
		errors.Is(err, ErrConflictingAccounts),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrInvalidOTP),
		errors.Is(err, ErrInvalidAssertion),
		errors.Is(err, ErrMissingGoogleInput),
		errors.Is(err, file.ErrEmptyBlob),
		errors.Is(err, file.ErrUnsupportedContent):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, ErrNotVerified),
		errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal server error", nil)
		return false // caller should log the original error
	}
	return true
}
