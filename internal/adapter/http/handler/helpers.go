package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iho/trxrecords/internal/adapter/http/dto"
	"github.com/iho/trxrecords/internal/domain"
)

const (
	msgValidationFailed = "Validation failed"
	msgUnexpected       = "Unexpected error occurred"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeDomainError maps err to a status and message and writes the envelope.
// Unexpected errors are logged and never reach the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, id int64) {
	status := mapDomainError(err)

	var message string
	switch {
	case status == http.StatusNotFound:
		message = fmt.Sprintf("Transaction with ID %d not found", id)
	case errors.Is(err, domain.ErrInvalidDescription):
		message = msgValidationFailed
	case status == http.StatusInternalServerError:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		message = msgUnexpected
	default:
		message = err.Error()
	}

	dto.WriteError(w, r, status, message)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDescription):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidPagination):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
// A present but non-numeric value is an error.
func parseIntQuery(r *http.Request, key string, defaultValue int) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidPagination, key)
	}

	return i, nil
}

// optionalQuery returns nil when key is absent or empty.
func optionalQuery(r *http.Request, key string) *string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}

	return &val
}

// parseID parses a positive record ID path segment.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}

	return id, nil
}
