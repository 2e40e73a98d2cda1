// Package httputil centralizes JSON response writing and domain error
// translation so handlers stay thin.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "appeal/pkg/domain-errors"
)

// WriteJSON encodes v with the given status. Encoding failures are ignored:
// the status line is already committed by the time they can occur.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded domain error to an HTTP response. Server-side codes
// (internal, dependency_unavailable) omit the description so infrastructure
// detail never reaches clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}

	switch code {
	case dErrors.CodeInternal, dErrors.CodeUnavailable:
		// description withheld
	default:
		if desc := dErrors.Description(err); desc != "" {
			body["error_description"] = desc
		}
	}

	WriteJSON(w, StatusFor(code), body)
}

// StatusFor maps error codes to HTTP statuses. Client faults are 4xx,
// dependency faults 503, everything else 500.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvalidState:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
