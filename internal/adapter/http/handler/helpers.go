package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/moneymanager/internal/adapter/http/dto"
	"github.com/iho/moneymanager/internal/adapter/http/middleware"
	"github.com/iho/moneymanager/internal/domain"
)

// writeSuccess writes the standard envelope around data.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeSuccessCount writes the envelope with a count field for list results.
func writeSuccessCount(w http.ResponseWriter, status int, message string, data any, count int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

// writeError maps a domain error to an HTTP status and writes the envelope.
// Unexpected errors are logged and surfaced as a generic failure.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapDomainError(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")

		message = "internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.Envelope{
		Success: false,
		Message: message,
	})
}

// writeBadRequest reports a malformed request body or parameter.
func writeBadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(dto.Envelope{
		Success: false,
		Message: message,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrTransferNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrNegativeBalance):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrEditWindowExpired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// callerID returns the identity placed in the context by the identity
// middleware.
func callerID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// parseTimeQuery parses an RFC 3339 query parameter.
func parseTimeQuery(r *http.Request, key string) (time.Time, bool) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
